package checks

import (
	"fmt"

	"asset-cache/core/vfs"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// CheckMounts returns the protocols whose mount directory does not exist.
func CheckMounts(resolver *vfs.Resolver) ([]string, error) {
	var missing []string
	for _, protocol := range resolver.Protocols() {
		root, _ := resolver.Root(protocol)
		ok, err := afero.DirExists(resolver.Fs(), root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat mount %s: %w", protocol, err)
		}
		if !ok {
			missing = append(missing, protocol)
		}
	}
	return missing, nil
}

// FixMounts creates the mount directories of missing.
func FixMounts(resolver *vfs.Resolver, logger *zap.Logger, missing []string) error {
	for _, protocol := range missing {
		root, ok := resolver.Root(protocol)
		if !ok {
			return fmt.Errorf("protocol %s is not mounted", protocol)
		}
		logger.Info("Creating mount directory", zap.String("protocol", protocol), zap.String("dir", root))
		if err := resolver.Fs().MkdirAll(root, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", root, err)
		}
	}
	return nil
}
