package records

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/passkeeper/internal/crypto"
	"github.com/iudanet/passkeeper/internal/models"
)

// Summary результат перешифрования legacy записей
type Summary struct {
	Checked   int  `json:"checked" yaml:"checked"`
	Skipped   int  `json:"skipped" yaml:"skipped"`
	Encrypted int  `json:"encrypted" yaml:"encrypted"`
	Failed    int  `json:"failed" yaml:"failed"`
	DryRun    bool `json:"dry_run" yaml:"dry_run"`
}

// EncryptLegacy walks every stored record and encodes secrets that were
// persisted in plaintext before encryption at rest was introduced.
// Records already in encoded form are skipped. With dryRun nothing is written.
//
// A record that cannot be rewritten is counted as failed and the walk continues.
func (s *Store) EncryptLegacy(ctx context.Context, dryRun bool) (Summary, error) {
	summary := Summary{DryRun: dryRun}

	err := s.storage.ForEachRecord(ctx, func(record *models.CredentialRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		summary.Checked++
		if crypto.IsEncoded(record.Secret) {
			summary.Skipped++
			return nil
		}

		s.logger.Info("legacy record will be encrypted",
			slog.String("record_id", record.ID),
			slog.String("user_id", record.OwnerID),
			slog.Bool("dry_run", dryRun),
		)

		if dryRun {
			summary.Encrypted++
			return nil
		}

		secret := record.Secret
		if _, err := s.Apply(ctx, record.OwnerID, record.ID, Patch{Secret: &secret}); err != nil {
			summary.Failed++
			s.logger.Error("failed to encrypt legacy record",
				slog.String("record_id", record.ID),
				slog.Any("error", err),
			)
			return nil
		}

		summary.Encrypted++
		s.metrics.LegacyEncrypted()
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("encrypt legacy records: %w", err)
	}

	return summary, nil
}
