// Package fallback implements the credential fallback chain for the
// storage-backed challenge responder. The managed-identity path is probed
// with a cheap existence check; only a specific authorization-denied signal
// moves the chain to the next source. Any other probe failure propagates
// unchanged so outages and misconfiguration are never masked as a silently
// adopted fallback account.
package fallback

import (
	"context"
	"fmt"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/common/errs"
)

// Source identifies which credential path produced the adopted storage
// client.
type Source int

const (
	// SourcePrimary is the managed-identity credential path.
	SourcePrimary Source = iota

	// SourceConnectionString is an explicit connection string from
	// configuration.
	SourceConnectionString

	// SourceSecret is a connection string fetched from a secret store.
	SourceSecret
)

func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "managed identity"
	case SourceConnectionString:
		return "connection string"
	case SourceSecret:
		return "secret store"
	default:
		return fmt.Sprintf("unknown source %d", int(s))
	}
}

// Sources lists the alternative credential paths, in fallback order. Empty
// values mark a source as not configured.
type Sources struct {
	ConnectionString string
	VaultName        string
	SecretName       string
}

// Outcome reports the storage client adopted by the chain and the source it
// came from.
type Outcome struct {
	Client interfaces.BlobContainer
	Source Source
}

// probeKey is checked for existence to verify that the storage account
// accepts the managed identity. Only the denial signal matters; whether the
// object exists is irrelevant.
const probeKey = ".well-known/acme-challenge/probe"

// Executor probes the managed-identity credential path for a storage account
// and falls back through the configured sources when the account denies it.
type Executor struct {
	log     interfaces.Logger
	clients interfaces.StorageClientFactory
	secrets interfaces.SecretStore
}

// New creates a fallback chain executor with the provided collaborators.
func New(log interfaces.Logger, clients interfaces.StorageClientFactory, secrets interfaces.SecretStore) *Executor {
	return &Executor{
		log:     log,
		clients: clients,
		secrets: secrets,
	}
}

// Execute returns a ready-to-use storage client for the account. The
// managed-identity path is tried first; on an authorization-denied probe the
// configured sources are tried in order. An exhausted chain is a fatal
// configuration error naming the account.
func (e *Executor) Execute(ctx context.Context, account, container string, sources Sources) (*Outcome, error) {
	primary, err := e.clients.FromManagedIdentity(ctx, account, container)
	if err != nil {
		return nil, err
	}

	_, err = primary.Exists(ctx, probeKey)
	if err == nil {
		return &Outcome{Client: primary, Source: SourcePrimary}, nil
	}

	if !errs.IsAuthorizationDenied(err) {
		return nil, err
	}

	e.log.
		WithField("account", account).
		WithError(err).
		Warn("storage account denied the managed identity, trying fallback credential sources")

	if sources.ConnectionString != "" {
		client, err := e.clients.FromConnectionString(sources.ConnectionString, container)
		if err != nil {
			return nil, err
		}

		return &Outcome{Client: client, Source: SourceConnectionString}, nil
	}

	if sources.VaultName != "" && sources.SecretName != "" {
		e.log.
			WithField("vault", sources.VaultName).
			WithField("secret", sources.SecretName).
			Info("consulting secret store for a connection string")

		connectionString, err := e.secrets.GetSecret(ctx, sources.VaultName, sources.SecretName)
		switch {
		case err == nil:
			client, err := e.clients.FromConnectionString(connectionString, container)
			if err != nil {
				return nil, err
			}

			return &Outcome{Client: client, Source: SourceSecret}, nil

		case errs.IsNotFound(err):
			// missing secret: treat the source as absent

		default:
			return nil, err
		}
	}

	return nil, errs.NewConfiguration("challengeResponder", fmt.Sprintf(
		"unable to proceed: storage account %q denied the managed identity and no fallback credential source is available",
		account))
}
