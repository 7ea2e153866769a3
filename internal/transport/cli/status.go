package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecprovision/internal/domain"
	"github.com/kailas-cloud/vecprovision/internal/usecase/health"
	"github.com/kailas-cloud/vecprovision/internal/usecase/provision"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report database health and whether the collections exist",
	Long: `Checks that Weaviate is reachable and ready, optionally verifies the
embedding provider key, then lists the configured collections with their
vectorizer. Nothing is modified. Exits non-zero when the database is
unreachable or a check fails.`,
	RunE: runStatus,
}

var statusOpts struct {
	verifyCredentials bool
}

func init() {
	statusCmd.Flags().BoolVar(&statusOpts.verifyCredentials, "verify-credentials", false,
		"also check the embedding provider key")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	log := rt.logger
	defer func() { _ = log.Sync() }()

	ctx, cancel := rt.commandContext(cmd.Context(), rt.cfg.Weaviate.RequestTimeout())
	defer cancel()

	b, err := dialBackend(ctx, rt.cfg, log, false)
	if err != nil {
		log.Error("Failed to connect", zap.Error(err))
		return err
	}
	defer b.Close()

	var checker health.CredentialChecker
	if rt.cfg.Embedding.VerifyCredentials || statusOpts.verifyCredentials {
		provider, err := rt.cfg.Embedding.ResolveProvider()
		if err != nil {
			return err
		}
		checker = rt.credentialChecker(provider)
	}

	report := health.New(b, checker).Check(ctx)
	cmd.Printf("status: %s\n", report.Status)
	for _, name := range []string{"database", "embedding"} {
		res, ok := report.Checks[name]
		if !ok {
			continue
		}
		if res.OK {
			cmd.Printf("  %s: ok (%s)\n", name, res.Duration.Round(time.Millisecond))
		} else {
			cmd.Printf("  %s: error: %v\n", name, res.Err)
		}
	}

	if report.Status == health.Unhealthy {
		return fmt.Errorf("database check failed: %w", report.Checks["database"].Err)
	}

	svc := provision.New(provision.DialerFunc(func(context.Context) (provision.Conn, error) {
		// Shares the open session; closed by the deferred b.Close.
		return provision.NewConn(b, nil), nil
	}), log)
	statuses, err := svc.Inspect(ctx, []string{rt.cfg.Collections.Search, rt.cfg.Collections.Store})
	if err != nil {
		log.Error("Failed to inspect collections", zap.Error(err))
		return err
	}
	for _, st := range statuses {
		if !st.Exists {
			cmd.Printf("  collection %s: missing\n", st.Name)
			continue
		}
		props := make([]string, 0, len(st.Collection.Properties()))
		for _, p := range st.Collection.Properties() {
			props = append(props, fmt.Sprintf("%s:%s", p.Name(), p.DataType()))
		}
		cmd.Printf("  collection %s: present (vectorizer %s, properties %v)\n",
			st.Name, st.Collection.Vectorizer().Module(), props)
	}

	if report.Status != health.Healthy {
		return fmt.Errorf("status %s: %w", report.Status, domain.ErrProviderCredential)
	}
	return nil
}
