package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/types/known/structpb"

	c "github.com/unkn0wn-root/subcipher/codec"
)

// RecordCodec returns the Record codec registered under name:
// json (default), msgpack, cbor or protobuf.
func RecordCodec(name string) (c.Codec[Record], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return jsonRecord{}, nil
	case "msgpack":
		return msgpackRecord{}, nil
	case "cbor":
		cb, err := c.NewCBOR[Record](true)
		if err != nil {
			return nil, err
		}
		return cb, nil
	case "protobuf", "proto":
		return ProtoRecord(), nil
	}
	return nil, fmt.Errorf("store: unknown record codec %q", name)
}

// ProtoRecord encodes a Record as a protobuf structpb.Struct.
func ProtoRecord() c.Codec[Record] {
	return c.Map[Record, *structpb.Struct]{
		Inner: c.NewProtobuf(func() *structpb.Struct { return &structpb.Struct{} }),
		To: func(r Record) (*structpb.Struct, error) {
			return structpb.NewStruct(map[string]any{
				"method":      r.Method,
				"selected_at": r.SelectedAt.Format(time.RFC3339Nano),
			})
		},
		From: func(s *structpb.Struct) (Record, error) {
			f := s.GetFields()
			r := Record{Method: f["method"].GetStringValue()}
			if ts := f["selected_at"].GetStringValue(); ts != "" {
				t, err := time.Parse(time.RFC3339Nano, ts)
				if err != nil {
					return Record{}, fmt.Errorf("store: selected_at: %w", err)
				}
				r.SelectedAt = t
			}
			return r, nil
		},
	}
}

// jsonRecord writes {"method":..,"selected_at":RFC3339}. A value that is
// valid JSON but carries no method decodes to an empty Record, which Load
// reports as absent.
type jsonRecord struct{}

func (jsonRecord) Encode(r Record) ([]byte, error) { return json.Marshal(r) }
func (jsonRecord) Decode(b []byte) (Record, error) {
	var r Record
	err := json.Unmarshal(b, &r)
	return r, err
}

// msgpackRecord uses the msgpack tags on Record; SelectedAt travels as the
// msgpack timestamp extension.
type msgpackRecord struct{}

func (msgpackRecord) Encode(r Record) ([]byte, error) { return msgpack.Marshal(&r) }
func (msgpackRecord) Decode(b []byte) (Record, error) {
	var r Record
	err := msgpack.Unmarshal(b, &r)
	return r, err
}
