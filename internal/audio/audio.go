package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)

	clickLength = 40 * time.Millisecond
	// maxVoices caps how many clicks overlap, so a pile-up of contacts in one
	// frame does not clip.
	maxVoices = 4
)

// Click is a short decaying sine burst. Its pitch follows the impact speed.
type Click struct {
	freq     float64
	phase    float64
	gain     float64
	position int
	length   int
	rate     beep.SampleRate
}

func NewClick(freq, gain float64, rate beep.SampleRate) *Click {
	return &Click{
		freq:   freq,
		gain:   math.Max(0, math.Min(gain, 1)),
		length: rate.N(clickLength),
		rate:   rate,
	}
}

func (c *Click) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.length {
			return i, i > 0
		}
		env := 1 - float64(c.position)/float64(c.length)
		val := c.gain * env * env * math.Sin(2*math.Pi*c.phase)
		samples[i][0] = val
		samples[i][1] = val

		c.phase += c.freq / float64(c.rate)
		c.phase -= math.Floor(c.phase)
		c.position++
	}
	return len(samples), true
}

func (c *Click) Err() error { return nil }

// PitchFor maps a closing speed to a click frequency between 220 Hz and 880 Hz.
func PitchFor(speed float64) float64 {
	t := math.Min(math.Abs(speed)/400, 1)
	return 220 + t*660
}

// Player plays collision clicks through the system speaker. A Player whose
// Init failed stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	voices      atomic.Int32
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Collide queues one click for a contact with the given closing speed.
func (p *Player) Collide(speed float64) {
	p.mu.Lock()
	ready := p.initialized
	p.mu.Unlock()

	if !ready {
		return
	}
	if p.voices.Add(1) > maxVoices {
		p.voices.Add(-1)
		return
	}
	click := NewClick(PitchFor(speed), 0.3, SampleRate)
	// The callback runs on the speaker goroutine with the speaker lock held.
	done := beep.Callback(func() { p.voices.Add(-1) })

	speaker.Lock()
	p.mixer.Add(beep.Seq(click, done))
	speaker.Unlock()
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Cleared clicks never reach their done callback, so their slots are
	// released here.
	defer p.voices.Store(0)

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
