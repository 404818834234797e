package audio

import (
	"bytes"
	"encoding/binary"
	"mime"
	"strconv"
)

const (
	defaultPCMSampleRate = 24000
	pcmBitsPerSample     = 16
	pcmChannels          = 1
)

// EncodeWAV wraps raw little-endian 16-bit mono PCM in a WAV container
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = defaultPCMSampleRate
	}

	dataSize := uint32(len(pcm))
	blockAlign := uint16(pcmChannels * pcmBitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(pcmChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, blockAlign)
	binary.Write(&buf, binary.LittleEndian, uint16(pcmBitsPerSample))

	// data chunk
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}

// pcmSampleRate extracts the rate parameter from a MIME type such as
// "audio/L16;codec=pcm;rate=24000"
func pcmSampleRate(mimeType string) int {
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return defaultPCMSampleRate
	}

	rate, err := strconv.Atoi(params["rate"])
	if err != nil || rate <= 0 {
		return defaultPCMSampleRate
	}
	return rate
}
