package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const referencePrefix = "HD"

// GenerateReference issues the next human-facing reference for the current
// month: HD-YYYY-MM-NNNN, zero-padded, sequence restarting every month. When
// the lookup fails, a timestamp-derived sequence keeps the same format
// family and is practically unique.
func (s *Service) GenerateReference(ctx context.Context) (string, error) {
	now := s.now()
	prefix := fmt.Sprintf("%s-%04d-%02d-", referencePrefix, now.Year(), int(now.Month()))

	seq, err := s.repo.MaxReferenceSeq(ctx, prefix)
	if err != nil {
		s.log.Warn("reference lookup failed, falling back to timestamp", zap.Error(err))
		return fmt.Sprintf("%s%04d", prefix, now.Unix()%10000), nil
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}
