package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/app/renew"
	"github.com/0xjbushell/lets-encrypt-azure/app/resolve"
	"github.com/0xjbushell/lets-encrypt-azure/common/logging"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
	"github.com/0xjbushell/lets-encrypt-azure/infra/azcdn"
	"github.com/0xjbushell/lets-encrypt-azure/infra/azident"
	"github.com/0xjbushell/lets-encrypt-azure/infra/azstorage"
	"github.com/0xjbushell/lets-encrypt-azure/infra/certgen"
	"github.com/0xjbushell/lets-encrypt-azure/infra/filestore"
	"github.com/0xjbushell/lets-encrypt-azure/infra/filesystem"
	"github.com/0xjbushell/lets-encrypt-azure/infra/keyvault"
	infraTime "github.com/0xjbushell/lets-encrypt-azure/infra/time"
)

var (
	cfgFile          string
	tenantID         string
	subscriptionID   string
	renewalThreshold time.Duration
	selfSignedBits   int
)

var log = logging.NewFromLogrus(logrus.New())

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "renewal.yaml",
		"The renewal configuration file listing the certificates to renew.")

	RootCmd.PersistentFlags().StringVar(&tenantID, "tenant-id", "",
		"The tenant in which managed identity tokens are acquired. Overrides the configuration file.")

	RootCmd.PersistentFlags().StringVar(&subscriptionID, "subscription-id", "",
		"The subscription holding the target resources. Overrides the configuration file.")

	RootCmd.PersistentFlags().DurationVar(&renewalThreshold, "renewal-threshold", renew.DefaultRenewalThreshold,
		"The remaining certificate lifetime below which a renewal is performed.")

	RootCmd.PersistentFlags().IntVar(&selfSignedBits, "self-signed-key-bits", 2048,
		"The RSA key size used by the self-signed issuer.")
}

// RootCmd defines the root command for the certificate renewal application.
var RootCmd = &cobra.Command{
	Use:   "lets-encrypt-azure",
	Short: "Renews TLS certificates for Azure-hosted endpoints",
	Run:   runRootCmd,
}

type renewalConfig struct {
	TenantID       string                    `mapstructure:"tenantId"`
	SubscriptionID string                    `mapstructure:"subscriptionId"`
	Certificates   []*renewal.RenewalRequest `mapstructure:"certificates"`
}

func loadConfig() (*renewalConfig, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix("LEA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &renewalConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if tenantID != "" {
		cfg.TenantID = tenantID
	}

	if subscriptionID != "" {
		cfg.SubscriptionID = subscriptionID
	}

	return cfg, nil
}

type storeFactory struct {
	log  interfaces.Logger
	cred azcore.TokenCredential
}

func (f *storeFactory) New(store renewal.ResolvedCertificateStore) (interfaces.CertificateStore, error) {
	switch store.Kind {
	case "keyvault":
		return keyvault.NewCertificateStore(f.log, f.cred, store.Name)

	case "filesystem":
		fs, err := filesystem.NewLocalFileSystem(store.Name)
		if err != nil {
			return nil, err
		}

		return filestore.New(fs), nil

	default:
		return nil, fmt.Errorf("no certificate store backend for kind %q", store.Kind)
	}
}

type targetFactory struct {
	log            interfaces.Logger
	cred           azcore.TokenCredential
	subscriptionID string
}

func (f *targetFactory) New(target renewal.ResolvedTarget) (interfaces.TargetResource, error) {
	switch target.Kind {
	case "cdn":
		return azcdn.NewTarget(f.log, f.cred, f.subscriptionID, target)

	default:
		return nil, fmt.Errorf("no target backend for kind %q", target.Kind)
	}
}

func runRootCmd(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("loading renewal configuration")
	}

	if len(cfg.Certificates) == 0 {
		log.Fatal("invalid configuration: no certificates configured")
	}

	cred, err := azident.NewManagedIdentity()
	if err != nil {
		log.WithError(err).Fatal("creating managed identity credential")
	}

	clock := infraTime.NewSystemTime()
	broker := azident.NewBroker(cred)
	secrets := keyvault.NewSecretStore(cred)
	clients := azstorage.NewFactory(broker, clock, cfg.TenantID)
	resolver := resolve.New(log, clients, secrets)

	renewCmd := renew.New(log, resolver,
		&storeFactory{log: log, cred: cred},
		&targetFactory{log: log, cred: cred, subscriptionID: cfg.SubscriptionID},
		certgen.NewSelfSigned(selfSignedBits),
		clock, renewalThreshold)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := false

	for _, req := range cfg.Certificates {
		reqLog := log.WithField("host_names", req.HostNames)
		reqLog.Info("renewing certificate")

		if err := renewCmd.Execute(ctx, renew.Model{Request: req}); err != nil {
			reqLog.WithError(err).Error("renewing certificate")
			failed = true
		}
	}

	if failed {
		log.Fatal("one or more renewals failed")
	}
}
