package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecprovision/internal/domain/vectorizer"
	logpkg "github.com/kailas-cloud/vecprovision/internal/logger"
	"github.com/kailas-cloud/vecprovision/internal/metrics"
	"github.com/kailas-cloud/vecprovision/internal/usecase/provision"
	"github.com/kailas-cloud/vecprovision/internal/version"
)

var provisionOpts struct {
	dryRun            bool
	verifyCredentials bool
	timeout           time.Duration
}

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Drop and recreate the search and store collections",
	Long: `Deletes the configured search and store collections if they exist, then
creates both with the selected text vectorizer. The connection is closed on
every exit path. Any failure aborts the run with a non-zero exit code; a
collection created before the failure is left in place.`,
	RunE: runProvision,
}

func init() {
	addProvisionFlags(provisionCmd)
	rootCmd.AddCommand(provisionCmd)
}

func addProvisionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&provisionOpts.dryRun, "dry-run", false, "print the collections that would be created and exit")
	f.BoolVar(&provisionOpts.verifyCredentials, "verify-credentials", false,
		"check the embedding provider key before touching the database")
	f.DurationVar(&provisionOpts.timeout, "timeout", 0, "overall run timeout (default: PROVISION_TIMEOUT_SEC or 2m)")
}

func runProvision(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	log := rt.logger
	defer func() { _ = log.Sync() }()

	provider, err := rt.cfg.Embedding.ResolveProvider()
	if err != nil {
		return err
	}
	vec, err := vectorizer.New(provider, rt.cfg.Embedding.Model)
	if err != nil {
		return err
	}
	cols, err := provision.Plan(rt.cfg.Collections.Search, rt.cfg.Collections.Store, vec)
	if err != nil {
		log.Error("Invalid collection plan", zap.Error(err))
		return err
	}

	log.Info("Starting vecprovision",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", rt.env),
		zap.String("provider", string(provider)),
		zap.String("vectorizer", vec.Module()),
		zap.String("search_collection", cols[0].Name()),
		zap.String("store_collection", cols[1].Name()),
	)

	if provisionOpts.dryRun {
		for _, col := range cols {
			cmd.Printf("would create %s collection %s (vectorizer %s, property %s:text)\n",
				col.Kind(), col.Name(), col.Vectorizer().Module(), provision.ContentProperty)
		}
		return nil
	}

	timeout := time.Duration(rt.cfg.TimeoutSec) * time.Second
	if provisionOpts.timeout > 0 {
		timeout = provisionOpts.timeout
	}
	ctx, cancel := rt.commandContext(cmd.Context(), timeout)
	defer cancel()
	ctx = logpkg.WithFields(ctx, zap.String("command", "provision"))

	metrics.RegisterProvisionMetrics()
	defer rt.pushMetrics()

	svc := provision.New(rt.dialer(), log)
	if rt.cfg.Embedding.VerifyCredentials || provisionOpts.verifyCredentials {
		svc.WithCredentialChecker(rt.credentialChecker(provider))
	}

	report, err := svc.Provision(ctx, cols)
	if err != nil {
		log.Error("Provisioning failed", zap.Error(err))
		return fmt.Errorf("provision: %w", err)
	}

	for _, out := range report.Outcomes {
		action := "created"
		if out.Replaced {
			action = "recreated"
		}
		cmd.Printf("%s collection %s %s (vectorizer %s)\n", out.Kind, out.Name, action, out.Module)
	}
	log.Info("Provisioning complete", zap.Int("collections", len(report.Outcomes)))
	return nil
}
