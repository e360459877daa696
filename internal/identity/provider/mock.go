package provider

import (
	"context"
	"time"

	"lendgate/pkg/domain"
)

// Mock is the non-production identity provider. It serves a fixed record per
// reference number with a configurable latency to mimic real-world calls.
// Seeded records override the default; unseeded references all resolve to
// the same fixed identity so local flows are predictable.
type Mock struct {
	Latency time.Duration

	ninRecords map[domain.NIN]Record
	bvnRecords map[domain.BVN]Record
}

// NewMock creates a mock provider with no seeded records.
func NewMock(latency time.Duration) *Mock {
	return &Mock{
		Latency:    latency,
		ninRecords: make(map[domain.NIN]Record),
		bvnRecords: make(map[domain.BVN]Record),
	}
}

// SeedNIN registers a deterministic record for a NIN.
func (m *Mock) SeedNIN(nin domain.NIN, record Record) {
	m.ninRecords[nin] = record
}

// SeedBVN registers a deterministic record for a BVN.
func (m *Mock) SeedBVN(bvn domain.BVN, record Record) {
	m.bvnRecords[bvn] = record
}

var defaultRecord = Record{
	FirstName:   "Sample",
	LastName:    "Customer",
	Gender:      "M",
	DateOfBirth: "1990-02-03",
	PhoneNumber: "08031234567",
}

func (m *Mock) VerifyNIN(ctx context.Context, nin domain.NIN) (*Record, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	if record, ok := m.ninRecords[nin]; ok {
		return &record, nil
	}
	record := defaultRecord
	return &record, nil
}

func (m *Mock) VerifyBVN(ctx context.Context, bvn domain.BVN) (*Record, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	if record, ok := m.bvnRecords[bvn]; ok {
		return &record, nil
	}
	record := defaultRecord
	return &record, nil
}

func (m *Mock) sleep(ctx context.Context) error {
	if m.Latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.Latency):
		return nil
	}
}
