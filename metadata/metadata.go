package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// libMagic identifies a compiled Matcha library file.  The final byte is the
// container format revision, independent of the block metadata version.
var libMagic = [4]byte{'M', 'L', 'B', 1}

// Metadata is one module's compiled payload extracted from a library file.  A
// single library may contain several blocks (a multi-module archive).  Blocks
// are immutable after extraction.
type Metadata struct {
	// ModuleName is the declared name of the compiled module.
	ModuleName string

	// Version is the binary version the block was compiled with.
	Version Version

	// Header holds the serialized module-level information.
	Header []byte

	// Body holds the serialized declaration table.
	Body []byte

	// FilePath is the path of the library file the block was extracted from.
	FilePath string
}

// LoadMetadata reads a library file and decodes all metadata blocks within it.
// If the file is readable but is not a Matcha library, LoadMetadata returns an
// empty slice and no error: the caller decides whether that is worth a
// diagnostic.  An error is returned only if the file cannot be read or the
// container is corrupt.
func LoadMetadata(path string) ([]*Metadata, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	blocks, err := DecodeLibrary(buff)
	if err != nil {
		return nil, err
	}

	for _, block := range blocks {
		block.FilePath = path
	}

	return blocks, nil
}

// DecodeLibrary decodes the contents of a library file into its metadata
// blocks.  Data that does not begin with the library magic decodes to no
// blocks.
func DecodeLibrary(data []byte) ([]*Metadata, error) {
	if len(data) < len(libMagic) || !bytes.Equal(data[:len(libMagic)], libMagic[:]) {
		return nil, nil
	}

	r := bytes.NewReader(data[len(libMagic):])

	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("corrupt library: %w", err)
	}

	blocks := make([]*Metadata, 0, count)
	for i := uint64(0); i < count; i++ {
		block, err := decodeBlock(r)
		if err != nil {
			return nil, fmt.Errorf("corrupt library block %d: %w", i, err)
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}

// EncodeLibrary serializes metadata blocks into library file contents.  It is
// the inverse of DecodeLibrary.
func EncodeLibrary(blocks []*Metadata) []byte {
	buff := bytes.Buffer{}
	buff.Write(libMagic[:])
	writeUvarint(&buff, uint64(len(blocks)))

	for _, block := range blocks {
		writeBytes(&buff, []byte(block.ModuleName))

		var version [6]byte
		binary.LittleEndian.PutUint16(version[0:], block.Version.Major)
		binary.LittleEndian.PutUint16(version[2:], block.Version.Minor)
		binary.LittleEndian.PutUint16(version[4:], block.Version.Patch)
		buff.Write(version[:])

		writeBytes(&buff, block.Header)
		writeBytes(&buff, block.Body)
	}

	return buff.Bytes()
}

// -----------------------------------------------------------------------------

// decodeBlock decodes a single metadata block from the reader.
func decodeBlock(r *bytes.Reader) (*Metadata, error) {
	name, err := readBytes(r)
	if err != nil {
		return nil, err
	}

	var version [6]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return nil, err
	}

	header, err := readBytes(r)
	if err != nil {
		return nil, err
	}

	body, err := readBytes(r)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		ModuleName: string(name),
		Version: Version{
			Major: binary.LittleEndian.Uint16(version[0:]),
			Minor: binary.LittleEndian.Uint16(version[2:]),
			Patch: binary.LittleEndian.Uint16(version[4:]),
		},
		Header: header,
		Body:   body,
	}, nil
}

// readBytes reads a single uvarint length-prefixed byte string.
func readBytes(r *bytes.Reader) ([]byte, error) {
	length, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}

	if length > uint64(r.Len()) {
		return nil, fmt.Errorf("declared length %d exceeds remaining data", length)
	}

	buff := make([]byte, length)
	if _, err := io.ReadFull(r, buff); err != nil {
		return nil, err
	}

	return buff, nil
}

// writeBytes writes a single uvarint length-prefixed byte string.
func writeBytes(buff *bytes.Buffer, data []byte) {
	writeUvarint(buff, uint64(len(data)))
	buff.Write(data)
}

func writeUvarint(buff *bytes.Buffer, n uint64) {
	var scratch [binary.MaxVarintLen64]byte
	buff.Write(scratch[:binary.PutUvarint(scratch[:], n)])
}
