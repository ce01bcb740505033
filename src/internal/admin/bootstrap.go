package admin

import (
	"context"

	"recipebox-svc/src/internal/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Reconciler converges the persisted admin identity to the configured
// credential on startup. The configured value is authoritative: a stored
// hash that no longer matches configuration is overwritten on every start.
type Reconciler struct {
	repo Repository
	cfg  *config.AdminSettings
}

func NewReconciler(repo Repository, cfg *config.AdminSettings) *Reconciler {
	return &Reconciler{repo: repo, cfg: cfg}
}

// Reconcile ensures the admin identity exists and carries the configured
// credential. A missing credential configuration is logged and skipped, so
// the process still starts; login then fails until one is provided.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	username := r.cfg.Username

	if r.cfg.PasswordHash == "" && r.cfg.Password == "" {
		logrus.WithField("username", username).
			Error("No admin credential configured: set ADMIN_PASSWORD_HASH or ADMIN_PASSWORD")
		return nil
	}

	if r.cfg.PasswordHash == "" {
		logrus.Warn("Using plain text admin password; consider setting ADMIN_PASSWORD_HASH instead")
	}

	identity, err := r.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if identity == nil {
		hash, err := r.configuredHash()
		if err != nil {
			return err
		}

		if err := r.repo.Insert(ctx, &Identity{
			Username:     username,
			PasswordHash: hash,
		}); err != nil {
			return err
		}

		logrus.WithField("username", username).Info("Admin identity created")
		return nil
	}

	if r.credentialMatches(identity.PasswordHash) {
		logrus.WithField("username", username).Debug("Admin identity already in sync with configuration")
		return nil
	}

	hash, err := r.configuredHash()
	if err != nil {
		return err
	}

	if err := r.repo.UpdatePasswordHash(ctx, username, hash); err != nil {
		return err
	}

	logrus.WithField("username", username).Info("Admin credential updated from configuration")
	return nil
}

func (r *Reconciler) configuredHash() (string, error) {
	if r.cfg.PasswordHash != "" {
		return r.cfg.PasswordHash, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.cfg.Password), bcryptCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash admin password")
		return "", err
	}
	return string(hash), nil
}

// credentialMatches reports whether the stored hash already represents the
// configured credential. Pre-hashed configuration compares hash strings;
// plaintext configuration compares through bcrypt, since re-hashing the same
// password yields a different string on every run.
func (r *Reconciler) credentialMatches(storedHash string) bool {
	if r.cfg.PasswordHash != "" {
		return storedHash == r.cfg.PasswordHash
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(r.cfg.Password)) == nil
}
