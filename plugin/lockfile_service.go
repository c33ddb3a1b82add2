package plugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardhq/guard/pkgsystem"
	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/values"
)

// LockfileService pins the plugins a project uses to the versions
// actually installed, so later sessions can detect drift.
type LockfileService struct {
	repo ports.LockfileRepository
	sys  ports.PackageSystem
}

// NewLockfileService creates a new LockfileService.
func NewLockfileService(repo ports.LockfileRepository, sys ports.PackageSystem) *LockfileService {
	return &LockfileService{repo: repo, sys: sys}
}

// Pin resolves each named plugin to its installed package, digests
// the package manifest, and writes the lockfile. Identifiers may be
// short names or prefixed package names.
func (s *LockfileService) Pin(ctx context.Context, names []string, lockfilePath string) (*entities.Lockfile, error) {
	lock := entities.NewLockfile()

	for _, raw := range names {
		ref := values.NewPluginReference(raw)

		spec, err := s.sys.Find(ctx, ref.PackageName())
		if errors.Is(err, entities.ErrPackageNotFound) {
			// plugins embedded in unprefixed packages
			spec, err = s.sys.Find(ctx, ref.Name())
		}
		if err != nil {
			return nil, fmt.Errorf("pin plugin %q: %w", ref.Name(), err)
		}

		_, manifestRaw, err := pkgsystem.ReadManifest(spec)
		if err != nil {
			return nil, fmt.Errorf("pin plugin %q: %w", ref.Name(), err)
		}

		entry := entities.PluginLock{
			Requested: raw,
			Resolved:  spec.Version,
			Source:    spec.Name,
			Digest:    values.DigestBytes(manifestRaw).String(),
		}
		if err := lock.AddPlugin(ref.Name(), entry); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, lock, lockfilePath); err != nil {
		return nil, fmt.Errorf("saving lockfile: %w", err)
	}
	return lock, nil
}

// Drift compares the lockfile against the installed packages and
// returns the names whose manifest digest or version changed.
// A missing lockfile yields no drift.
func (s *LockfileService) Drift(ctx context.Context, lockfilePath string) ([]string, error) {
	lock, err := s.repo.Load(ctx, lockfilePath)
	if err != nil {
		return nil, fmt.Errorf("loading lockfile: %w", err)
	}
	if lock == nil {
		return nil, nil
	}

	var drifted []string
	for name, pinned := range lock.Plugins {
		spec, err := s.sys.Find(ctx, pinned.Source)
		if err != nil {
			drifted = append(drifted, name)
			continue
		}

		_, manifestRaw, err := pkgsystem.ReadManifest(spec)
		if err != nil {
			drifted = append(drifted, name)
			continue
		}

		if spec.Version != pinned.Resolved || values.DigestBytes(manifestRaw).String() != pinned.Digest {
			drifted = append(drifted, name)
		}
	}
	return drifted, nil
}
