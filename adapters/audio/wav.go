package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
	// ffmpeg writes this data size when the output is not seekable (pipe:1)
	wavStreamingSize = 0xFFFFFFFF
)

// WAVHeader represents the canonical 44-byte header of a PCM WAV file
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // Number of channels
	SampleRate    uint32  // Sample rate
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16  // Bits per sample
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

// PCM is mono 16-bit audio held in memory. It implements entities.Audio.
type PCM struct {
	samples    []int16
	sampleRate int
}

var _ entities.Audio = (*PCM)(nil)

// NewPCM wraps mono samples recorded at sampleRate.
func NewPCM(samples []int16, sampleRate int) *PCM {
	return &PCM{samples: samples, sampleRate: sampleRate}
}

func (p *PCM) SampleRate() int { return p.sampleRate }

func (p *PCM) NumSamples() int { return len(p.samples) }

// Duration returns the playback length of the samples.
func (p *PCM) Duration() time.Duration {
	if p.sampleRate <= 0 {
		return 0
	}
	return time.Duration(len(p.samples)) * time.Second / time.Duration(p.sampleRate)
}

// Slice returns the samples between start and end. The result shares memory with p.
func (p *PCM) Slice(start, end time.Duration) entities.Audio {
	from := p.sampleIndex(start)
	to := p.sampleIndex(end)
	if to < from {
		to = from
	}
	return &PCM{samples: p.samples[from:to], sampleRate: p.sampleRate}
}

// Silent reports whether every sample is zero.
func (p *PCM) Silent() bool {
	for _, s := range p.samples {
		if s != 0 {
			return false
		}
	}
	return true
}

// Export encodes the samples. Only "wav" is supported.
func (p *PCM) Export(format string) ([]byte, error) {
	if format != "wav" {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	return EncodeWAV(p.samples, p.sampleRate)
}

// sampleIndex converts an offset to a sample position, clamped to the buffer.
func (p *PCM) sampleIndex(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	idx := int(int64(d) * int64(p.sampleRate) / int64(time.Second))
	if idx > len(p.samples) {
		return len(p.samples)
	}
	return idx
}

// EncodeWAV encodes mono PCM-16 samples into WAV format
func EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("cannot encode empty audio samples")
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	numChannels := uint16(1)
	bitsPerSample := uint16(16)
	dataSize := uint32(len(samples) * 2)

	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   wavFormatPCM,
		NumChannels:   numChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(samples)*2))

	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	return buf.Bytes(), nil
}

// IsWAV reports whether data starts with a RIFF/WAVE signature.
func IsWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// DecodeWAV decodes 16-bit PCM WAV data. Extra chunks (LIST, fact) are skipped
// and multi-channel audio is mixed down to mono.
func DecodeWAV(data []byte) (*PCM, error) {
	if !IsWAV(data) {
		return nil, fmt.Errorf("invalid WAV file: missing RIFF/WAVE header")
	}

	var (
		haveFmt       bool
		audioFormat   uint16
		numChannels   uint16
		sampleRate    uint32
		bitsPerSample uint16
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		body := pos + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return nil, fmt.Errorf("invalid WAV file: truncated fmt chunk")
			}
			audioFormat = binary.LittleEndian.Uint16(data[body : body+2])
			numChannels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			sampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			bitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("invalid WAV file: data chunk before fmt chunk")
			}
			end := body + int(size)
			if size == wavStreamingSize || end > len(data) || end < body {
				end = len(data)
			}
			return decodePCM16(data[body:end], audioFormat, numChannels, sampleRate, bitsPerSample)
		}

		next := body + int(size)
		if size%2 == 1 {
			next++
		}
		if next <= pos || size == wavStreamingSize {
			break
		}
		pos = next
	}

	return nil, fmt.Errorf("invalid WAV file: missing data chunk")
}

func decodePCM16(raw []byte, audioFormat, numChannels uint16, sampleRate uint32, bitsPerSample uint16) (*PCM, error) {
	if audioFormat != wavFormatPCM && audioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("unsupported audio format: %d (only PCM is supported)", audioFormat)
	}

	if bitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (only 16-bit is supported)", bitsPerSample)
	}

	if numChannels == 0 {
		return nil, fmt.Errorf("invalid channel count: 0")
	}

	if sampleRate == 0 {
		return nil, fmt.Errorf("invalid sample rate: 0")
	}

	frameSize := int(numChannels) * 2
	numFrames := len(raw) / frameSize
	samples := make([]int16, numFrames)

	for i := 0; i < numFrames; i++ {
		frame := raw[i*frameSize : (i+1)*frameSize]
		var sum int32
		for ch := 0; ch < int(numChannels); ch++ {
			sum += int32(int16(binary.LittleEndian.Uint16(frame[ch*2 : ch*2+2])))
		}
		samples[i] = int16(sum / int32(numChannels))
	}

	return NewPCM(samples, int(sampleRate)), nil
}
