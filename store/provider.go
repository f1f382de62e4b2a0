package store

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/subcipher/codec"
	pr "github.com/unkn0wn-root/subcipher/provider"
)

// maxRecordSize bounds what Load will hand to the codec.
const maxRecordSize = 4 << 10

// Provider stores the method as an encoded Record in any byte provider
// (bigcache, ristretto, redis). Persistence across restart is only as good as
// the provider: in-memory providers lose it with the process.
type Provider struct {
	p     pr.Provider
	codec c.Codec[Record]
	key   string
	now   func() time.Time
}

var _ Store = (*Provider)(nil)

// NewProvider wraps p. A nil codec defaults to JSON.
func NewProvider(p pr.Provider, namespace string, codec c.Codec[Record]) *Provider {
	if codec == nil {
		codec = jsonRecord{}
	}
	return &Provider{
		p:     p,
		codec: c.LimitCodec[Record]{Inner: codec, MaxDecode: maxRecordSize},
		key:   "subcipher:" + namespace + ":" + Key,
		now:   time.Now,
	}
}

func (s *Provider) Load(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.p.Get(ctx, s.key)
	if err != nil || !ok {
		return "", false, err
	}
	rec, err := s.codec.Decode(raw)
	if err != nil {
		// self-heal: an undecodable record is as good as none
		_ = s.p.Del(ctx, s.key)
		return "", false, nil
	}
	return rec.Method, rec.Method != "", nil
}

func (s *Provider) Save(ctx context.Context, name string) error {
	b, err := s.codec.Encode(Record{Method: name, SelectedAt: s.now().UTC()})
	if err != nil {
		return err
	}
	ok, err := s.p.Set(ctx, s.key, b, int64(len(b)), 0)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRejected
	}
	return nil
}

func (s *Provider) Close(ctx context.Context) error { return s.p.Close(ctx) }
