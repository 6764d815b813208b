package util

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
)

func NewBufferReader(data []byte) BufferReader {
	reader := bytes.NewReader(data)
	return BufferReader{
		reader: reader,
	}
}

type BufferReader struct {
	reader *bytes.Reader
}

func Read[T any](reader BufferReader) T {
	var value T
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func ReadArray[T any](reader BufferReader) Array[T] {
	var size int32
	binary.Read(reader.reader, binary.LittleEndian, &size)
	value := NewArray[T](int(size))
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func ReadString(reader BufferReader) string {
	var size int32
	binary.Read(reader.reader, binary.LittleEndian, &size)
	buffer := make([]byte, size)
	reader.reader.Read(buffer)
	return string(buffer)
}

func NewBufferWriter() BufferWriter {
	buffer := bytes.Buffer{}
	return BufferWriter{
		buffer: &buffer,
	}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}
func (self *BufferWriter) Length() int {
	return self.buffer.Len()
}

func Write[T any](writer BufferWriter, value T) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteArray[T any](writer BufferWriter, value Array[T]) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length()))
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteString(writer BufferWriter, value string) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(len(value)))
	writer.buffer.WriteString(value)
}

// Writes the buffer to a new file. The file is created before anything is
// written, so an open failure leaves no partial output behind.
func (self *BufferWriter) ToFile(file string) error {
	outfile, err := os.Create(file)
	if err != nil {
		return errors.Wrap(err, "failed to create output file "+file)
	}
	defer outfile.Close()
	if _, err := outfile.Write(self.buffer.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write output file "+file)
	}
	return nil
}

func ReadFileBuffer(file string) (BufferReader, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return BufferReader{}, errors.Wrap(err, "failed to read file "+file)
	}
	return NewBufferReader(data), nil
}
