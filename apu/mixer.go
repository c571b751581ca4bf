package apu

import "github.com/arl/blip"

const sampleRate = 44100

// Mixer accumulates a single mono channel of square-wave deltas into a
// blip_buf-style band-limited synthesizer and drains them as 16-bit PCM
// samples once per frame. It takes one combined amplitude per AddSample
// call; the APU stub does not feed it any channel output.
type Mixer struct {
	buf *blip.Buffer

	clockRate uint32
	prevOut   int16
}

// NewMixer builds a Mixer clocked at clockRate Hz (the CPU's tick rate),
// resampling down to 44100 Hz.
func NewMixer(clockRate uint32) *Mixer {
	m := &Mixer{
		buf:       blip.NewBuffer(sampleRate / 30),
		clockRate: clockRate,
	}
	m.buf.SetRates(float64(clockRate), float64(sampleRate))
	return m
}

// Reset clears the synthesizer's internal delta buffer.
func (m *Mixer) Reset() {
	m.buf.Clear()
	m.prevOut = 0
}

// AddSample records a step to out (a combined channel amplitude, 0-30)
// at the given clock time, as a delta against the previous sample.
func (m *Mixer) AddSample(time uint64, out int16) {
	if out == m.prevOut {
		return
	}
	m.buf.AddDelta(time, int32(out-m.prevOut))
	m.prevOut = out
}

// EndFrame closes out clockDuration clocks' worth of deltas and drains
// the resulting PCM samples into out, returning the sample count.
func (m *Mixer) EndFrame(clockDuration int, out []int16) int {
	m.buf.EndFrame(clockDuration)
	return m.buf.ReadSamples(out, len(out), false)
}
