package domain

import "context"

// DataSource executes read-only queries. Each call acquires and releases its
// own connection.
type DataSource interface {
	Query(ctx context.Context, query string) (ResultSet, error)
}

// Connector establishes the data source at startup. A Connect error aborts
// the run.
type Connector interface {
	Connect(ctx context.Context, cfg DatabaseConfig) (Source, error)
}

// Source is a connected DataSource that must be closed after the run.
type Source interface {
	DataSource
	Close() error
}

// Message is a rendered report ready for delivery.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Transport delivers a message. Only a failure of the final send step is
// returned; optional negotiation steps are handled inside the transport.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// DocumentRenderer turns a compiled Document into a mail body.
type DocumentRenderer interface {
	Render(doc *Document) (string, error)
}

// ConfigLoader reads the run configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// RevisionInfo resolves the version-control revision of the directory
// holding the check registry.
type RevisionInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}
