package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBTransactionError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaSeedError

	// Input errors
	CSVReadError
	CSVEmptyError
	ImagesReadError

	// Ingest errors
	IngestValidationError
	IngestGroupNotFoundError
	IngestUnsupportedDomainError
	IngestLookupError
	IngestStorageError
	IngestResolveError

	// Multi-table writer errors
	ChainWriteError
	ChainIdentityError

	// Classification errors
	ClassifyError
	ClassifyMethodError

	// Report errors
	ReportWriteError
)
