package pixabay

import (
	"time"

	"github.com/apibillme/cache"
)

const (
	DefaultRecordTTL      = 24 * time.Hour
	DefaultRecordCapacity = 4096
)

// RecordStore keeps records seen in query results so they can be looked up
// by id later. Implementations must be safe for concurrent use.
type RecordStore interface {
	Get(id string) (ImageRecord, bool, error)
	Set(id string, record ImageRecord) error
}

// MemoryRecordStore is an in-process RecordStore with a size cap. Entries
// expire ttl after they were last written; reads do not extend them.
type MemoryRecordStore struct {
	cache cache.Cache
}

func NewMemoryRecordStore(capacity int, ttl time.Duration) *MemoryRecordStore {
	if capacity <= 0 {
		capacity = DefaultRecordCapacity
	}
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}
	return &MemoryRecordStore{cache: cache.New(capacity, cache.WithTTL(ttl), cache.WithoutReset())}
}

func (s *MemoryRecordStore) Get(id string) (ImageRecord, bool, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return ImageRecord{}, false, nil
	}
	rec, ok := v.(ImageRecord)
	return rec, ok, nil
}

func (s *MemoryRecordStore) Set(id string, record ImageRecord) error {
	s.cache.Set(id, record)
	return nil
}
