package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/spf13/afero"
)

// Fingerprint hashes a command line. Arguments are length-prefixed so that
// ["a b"] and ["a", "b"] differ.
func Fingerprint(path string, args []string) string {
	h := sha256.New()

	writeField(h, path)
	for _, arg := range args {
		writeField(h, arg)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeField(w io.Writer, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))

	w.Write(n[:])
	io.WriteString(w, s)
}

// HashFile creates a hash of a file's content
func HashFile(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
