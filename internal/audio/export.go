package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// format is 16-bit stereo at SampleRate.
var format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// WriteWAV encodes c into w.
func WriteWAV(w io.WriteSeeker, c Cue) error {
	if err := wav.Encode(w, Render(c, format.SampleRate, 1), format); err != nil {
		return fmt.Errorf("audio: cannot encode %s: %w", c.Name, err)
	}
	return nil
}

// ExportAll writes every cue to dir as <name>.wav and returns the paths.
func ExportAll(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("audio: cannot create %s: %w", dir, err)
	}
	var paths []string
	for _, c := range Cues() {
		path := filepath.Join(dir, c.Name+".wav")
		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("audio: cannot create %s: %w", path, err)
		}
		err = WriteWAV(f, c)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
