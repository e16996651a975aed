package recording

import (
	"archive/zip"
	"os"

	"github.com/pkg/errors"
)

type ArchiveFile struct {
	Name string
	Body string
}

func MakeArchive(filename string, files []ArchiveFile) error {

	out, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "recording: could not create archive %s", filename)
	}
	defer out.Close()

	w := zip.NewWriter(out)

	for _, file := range files {
		f, err := w.Create(file.Name)
		if err != nil {
			return errors.Wrapf(err, "recording: could not add %s to archive", file.Name)
		}

		if _, err := f.Write([]byte(file.Body)); err != nil {
			return errors.Wrapf(err, "recording: could not write %s", file.Name)
		}
	}

	return errors.Wrap(w.Close(), "recording: could not finalize archive")
}
