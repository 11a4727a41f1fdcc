package processor

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/golang/snappy"
)

// SnappyFramedEncoding значение Accept-Encoding/Content-Encoding для потокового формата snappy
const SnappyFramedEncoding = "x-snappy-framed"

// AcceptsSnappy проверяет, готов ли клиент принять ответ в формате snappy
func AcceptsSnappy(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		encoding, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(encoding, SnappyFramedEncoding) {
			return true
		}
	}
	return false
}

// NewFramedWriter оборачивает w потоковым сжатием. Writer нужно закрыть после записи.
func NewFramedWriter(w io.Writer) *snappy.Writer {
	return snappy.NewBufferedWriter(w)
}

// CompressFramed сжимает данные целиком в потоковый формат
func CompressFramed(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := NewFramedWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressFramed читает весь поток в формате snappy
func DecompressFramed(r io.Reader) ([]byte, error) {
	return io.ReadAll(snappy.NewReader(r))
}
