package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

func TestListQuery(t *testing.T) {
	since := time.Date(2024, 11, 3, 10, 0, 0, 0, time.UTC)

	query, args, err := listQuery(domain.AuditFilter{
		TableName:    "bookings",
		RecordSearch: "42",
		Since:        since,
		UserID:       "u-1",
		Limit:        100,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, table_name, operation, record_id, changed_data, changed_by, changed_at FROM vw_updates "+
			"WHERE table_name = $1 AND changed_at >= $2 AND CAST(record_id AS TEXT) LIKE $3 "+
			"AND (user_id = $4 OR manager_id = $5) ORDER BY changed_at DESC, id DESC LIMIT 100",
		query)
	assert.Equal(t, []interface{}{"bookings", since, "%42%", "u-1", "u-1"}, args)
}

func TestListQuery_NoFilters(t *testing.T) {
	query, args, err := listQuery(domain.AuditFilter{}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}
