package handlers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"rescuehub/config"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	maxAudioFileSize        = 5 * 1024 * 1024
	maxAudioDurationSeconds = 60
	audioExtension          = ".wav"
)

// waveHeader is the canonical 44-byte RIFF/WAVE preamble. Files with extra
// chunks before the data chunk will misreport DataSize, matching what the
// upstream recognizer tolerates.
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

// validateWaveDuration rejects recordings longer than the recognizer limit
// before any transcoding work is spent on them.
func validateWaveDuration(r io.Reader) error {
	var h waveHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return errors.New("invalid WAV header")
	}
	if string(h.RiffTag[:]) != "RIFF" || string(h.WaveTag[:]) != "WAVE" {
		return errors.New("not a RIFF/WAVE file")
	}
	if h.ByteRate == 0 {
		return errors.New("invalid WAV header: zero byte rate")
	}
	if seconds := h.DataSize / h.ByteRate; seconds > maxAudioDurationSeconds {
		return fmt.Errorf("recording is %ds long, limit is %ds", seconds, maxAudioDurationSeconds)
	}
	return nil
}

// convertAudio reencodes the upload to 16kHz mono PCM, the format the
// recognizer expects regardless of what the caller's device recorded.
func convertAudio(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}

// TranscribeHandler converts an uploaded WAV recording of the caller to
// text. The client then submits the transcript as a voice turn, where the
// model-side correction pass cleans it up against the conversation.
func TranscribeHandler(c *gin.Context) {
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file is required",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != audioExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", audioExtension, ext),
		})
		return
	}

	if header.Size > maxAudioFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file too large",
			"details": fmt.Sprintf("upload is %d bytes, limit is %d", header.Size, maxAudioFileSize),
		})
		return
	}

	tempInput, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create temp file", "details": err.Error()})
		return
	}
	defer os.Remove(tempInput.Name())
	defer tempInput.Close()

	// LimitReader guards against a multipart header lying about the size;
	// hitting the limit means the body was larger than declared.
	written, err := io.Copy(tempInput, io.LimitReader(file, maxAudioFileSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save audio file", "details": err.Error()})
		return
	}
	if written > maxAudioFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file too large",
			"details": fmt.Sprintf("upload exceeds the %d byte limit", maxAudioFileSize),
		})
		return
	}

	if _, err := tempInput.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio file", "details": err.Error()})
		return
	}
	if err := validateWaveDuration(tempInput); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audio file", "details": err.Error()})
		return
	}

	tempOutput, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create output temp file", "details": err.Error()})
		return
	}
	defer os.Remove(tempOutput.Name())
	defer tempOutput.Close()

	if err := convertAudio(tempInput.Name(), tempOutput.Name()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio conversion failed", "details": err.Error()})
		return
	}

	audioData, err := os.ReadFile(tempOutput.Name())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read converted audio", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize speech client", "details": err.Error()})
		return
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audioData,
			},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech recognition failed", "details": err.Error()})
		return
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": strings.TrimSpace(transcript.String()),
	})
}
