package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"matcha/common"
)

// Header is the decoded module-level information of a metadata block.
type Header struct {
	// ModuleName is the module name as recorded inside the payload.  It always
	// matches the block's declared name for libraries produced by this
	// compiler.
	ModuleName string

	// DeclCount is the number of declarations serialized in the body.
	DeclCount int
}

// DecodeHeader decodes the header bytes of a metadata block.
func DecodeHeader(header []byte) (*Header, error) {
	r := bytes.NewReader(header)

	name, err := readBytes(r)
	if err != nil {
		return nil, fmt.Errorf("corrupt metadata header: %w", err)
	}

	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("corrupt metadata header: %w", err)
	}

	return &Header{ModuleName: string(name), DeclCount: int(count)}, nil
}

// DecodeDeclarations decodes the header and body bytes of a metadata block into
// the declared symbols of the module.
func DecodeDeclarations(header, body []byte) ([]*common.Symbol, error) {
	h, err := DecodeHeader(header)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(body)
	syms := make([]*common.Symbol, 0, h.DeclCount)

	for i := 0; i < h.DeclCount; i++ {
		name, err := readBytes(r)
		if err != nil {
			return nil, fmt.Errorf("corrupt declaration %d: %w", i, err)
		}

		kind, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("corrupt declaration %d: %w", i, err)
		}

		exported, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("corrupt declaration %d: %w", i, err)
		}

		sig, err := readBytes(r)
		if err != nil {
			return nil, fmt.Errorf("corrupt declaration %d: %w", i, err)
		}

		syms = append(syms, &common.Symbol{
			Name:       string(name),
			ModuleName: h.ModuleName,
			DefKind:    int(kind),
			Exported:   exported != 0,
			Signature:  string(sig),
		})
	}

	return syms, nil
}

// EncodeDeclarations serializes the declared symbols of a module into the
// header and body payloads of a metadata block.  It is the inverse of
// DecodeDeclarations.
func EncodeDeclarations(moduleName string, syms []*common.Symbol) (header, body []byte) {
	hbuff := bytes.Buffer{}
	writeBytes(&hbuff, []byte(moduleName))
	writeUvarint(&hbuff, uint64(len(syms)))

	bbuff := bytes.Buffer{}
	for _, sym := range syms {
		writeBytes(&bbuff, []byte(sym.Name))
		bbuff.WriteByte(byte(sym.DefKind))

		if sym.Exported {
			bbuff.WriteByte(1)
		} else {
			bbuff.WriteByte(0)
		}

		writeBytes(&bbuff, []byte(sym.Signature))
	}

	return hbuff.Bytes(), bbuff.Bytes()
}
