package processor

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/golang/snappy"
)

// snapshotMagic заголовок файла снимка; меняется при несовместимых изменениях формата
var snapshotMagic = []byte("SSDSNAP1\n")

// ErrBadSnapshot файл не является снимком или поврежден
var ErrBadSnapshot = errors.New("поврежденный снимок набора данных")

// PackSnapshot объединяет два этапа подготовки снимка:
// 1. Сжатие полезной нагрузки блочным форматом Snappy
// 2. Добавление заголовка с отпечатком источника, по которому снимок проверяется при чтении.
func PackSnapshot(fingerprint string, payload []byte) []byte {
	compressed := snappy.Encode(nil, payload)

	var buf bytes.Buffer
	buf.Grow(len(snapshotMagic) + len(fingerprint) + 1 + len(compressed))
	buf.Write(snapshotMagic)
	buf.WriteString(fingerprint)
	buf.WriteByte('\n')
	buf.Write(compressed)
	return buf.Bytes()
}

// UnpackSnapshot выполняет обратный процесс:
// 1. Проверяет заголовок и извлекает отпечаток,
// 2. Распаковывает полезную нагрузку.
func UnpackSnapshot(data []byte) (fingerprint string, payload []byte, err error) {
	if !bytes.HasPrefix(data, snapshotMagic) {
		return "", nil, ErrBadSnapshot
	}
	rest := data[len(snapshotMagic):]

	end := bytes.IndexByte(rest, '\n')
	if end < 0 {
		return "", nil, ErrBadSnapshot
	}
	fingerprint = string(rest[:end])

	payload, err = snappy.Decode(nil, rest[end+1:])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	return fingerprint, payload, nil
}
