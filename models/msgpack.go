package models

import (
	"encoding/base64"

	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgPackValueEnvelope is the JSON body used when a client opts into msgpack
// for the field value (header X-Value-Encoding: msgpack). The entry id stays
// readable; only the value travels packed.
type MsgPackValueEnvelope struct {
	EntryID      string `json:"entry_id,omitempty"`
	ValueEncoded string `json:"value_encoded"` // Base64-encoded msgpack bytes
}

// EncodeMsgPackValue packs a FieldValue and Base64-encodes it.
// Encoding pipeline: FieldValue -> msgpack bytes -> Base64 string.
// A nil value encodes to the empty string.
func EncodeMsgPackValue(value *FieldValue) (string, error) {
	if value == nil {
		return "", nil
	}

	packed, err := msgpack.Marshal(value)
	if err != nil {
		return "", serr.Wrap(err, "failed to msgpack encode field value")
	}
	return base64.StdEncoding.EncodeToString(packed), nil
}

// DecodeMsgPackValue reverses EncodeMsgPackValue.
// The empty string decodes to nil.
func DecodeMsgPackValue(encoded string) (*FieldValue, error) {
	if encoded == "" {
		return nil, nil
	}

	packed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, serr.Wrap(err, "failed to decode base64 field value")
	}

	var value FieldValue
	if err := msgpack.Unmarshal(packed, &value); err != nil {
		return nil, serr.Wrap(err, "failed to unmarshal msgpack field value")
	}
	return &value, nil
}
