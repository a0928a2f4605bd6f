package relay

import (
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// IDCodec converts between (type name, internal id) pairs and opaque global ids.
type IDCodec interface {
	Encode(typeName string, id interface{}) (string, error)

	// Decode returns the type name encoded in the global id. If dst is non-nil, the internal id is
	// unmarshaled into it.
	Decode(globalID string, dst interface{}) (typeName string, err error)
}

// GlobalIDCodec encodes ids as base64 (URL alphabet, no padding) msgpack arrays. Internal ids can
// be any value msgpack can marshal.
type GlobalIDCodec struct{}

type globalID struct {
	_msgpack struct{} `msgpack:",asArray"`
	Type     string
	ID       []byte
}

func (GlobalIDCodec) Encode(typeName string, id interface{}) (string, error) {
	rawID, err := msgpack.Marshal(id)
	if err != nil {
		return "", errors.Wrap(err, "error marshaling internal id")
	}
	b, err := msgpack.Marshal(&globalID{
		Type: typeName,
		ID:   rawID,
	})
	if err != nil {
		return "", errors.Wrap(err, "error marshaling global id")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (GlobalIDCodec) Decode(s string, dst interface{}) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", errors.Wrap(err, "malformed global id")
	}
	var id globalID
	if err := msgpack.Unmarshal(b, &id); err != nil {
		return "", errors.Wrap(err, "malformed global id")
	}
	if id.Type == "" {
		return "", errors.New("global id has no type")
	}
	if dst != nil {
		if err := msgpack.Unmarshal(id.ID, dst); err != nil {
			return "", errors.Wrap(err, "error unmarshaling internal id")
		}
	}
	return id.Type, nil
}
