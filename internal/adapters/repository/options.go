package repository

const defaultSQLiteOpenConns = 1

// Option configures a SQLStore.
type Option func(*SQLStore)

// WithMaxOpenConns bounds the connection pool.
func WithMaxOpenConns(n int) Option {
	return func(s *SQLStore) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}

// WithoutMigrations skips the embedded schema migrations, for databases
// managed elsewhere.
func WithoutMigrations() Option {
	return func(s *SQLStore) {
		s.migrate = false
	}
}
