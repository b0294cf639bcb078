package db

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedQueriesLoad(t *testing.T) {
	for _, name := range []string{
		"latest_run_summary.sql",
		"latest_run_by_rule.sql",
		"latest_run_failures.sql",
	} {
		sql := query(name)
		assert.NotEmpty(t, sql, "query %s is empty", name)
		assert.Contains(t, strings.ToUpper(sql), "SELECT")
	}
}

func TestQuery_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() { query("missing.sql") })
}

func TestConnect_InvalidDSN(t *testing.T) {
	_, err := Connect(context.Background(), "://not-a-dsn")
	assert.Error(t, err)
}
