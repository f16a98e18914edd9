// File: questly/services/voice/wav.go
package voice

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Recordings come from the app's recorder, which emits 16 kHz mono PCM. The
// header is checked before anything is sent to the speech API.
const (
	maxAudioBytes      = 5 * 1024 * 1024
	requiredSampleRate = 16000
	requiredChannels   = 1
	pcmFormat          = 1
)

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}

	var header waveHeader
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// validateAudio rejects anything that is not small 16 kHz mono PCM WAV.
func validateAudio(data []byte) error {
	if len(data) == 0 {
		return errors.New("audio is required")
	}
	if len(data) > maxAudioBytes {
		return fmt.Errorf("audio exceeds %d bytes", maxAudioBytes)
	}

	header, err := parseWaveHeader(data)
	if err != nil {
		return err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return errors.New("not a WAV file")
	}
	if header.AudioFormat != pcmFormat {
		return fmt.Errorf("unsupported audio format %d, need PCM", header.AudioFormat)
	}
	if header.NumChannels != requiredChannels {
		return fmt.Errorf("expected mono audio, got %d channels", header.NumChannels)
	}
	if header.SampleRate != requiredSampleRate {
		return fmt.Errorf("expected %d Hz sample rate, got %d", requiredSampleRate, header.SampleRate)
	}
	return nil
}
