package repository

import (
	"strings"
	"testing"

	"talent-match/internal/domain/project"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProjectsQuery(t *testing.T) {
	query, args, err := listProjectsQuery(ProjectFilter{})
	require.NoError(t, err)
	assert.Contains(t, query, "FROM projects p")
	assert.Contains(t, query, "pm.project_id = p.id")
	assert.NotContains(t, query, "WHERE")
	assert.True(t, strings.HasSuffix(query, "ORDER BY p.created_at DESC, p.id ASC"))
	assert.Empty(t, args)
}

func TestListProjectsQuery_Filters(t *testing.T) {
	clientID := uuid.New()

	query, args, err := listProjectsQuery(ProjectFilter{Status: project.StatusInProgress, ClientID: &clientID})
	require.NoError(t, err)
	assert.Contains(t, query, "p.status = $1")
	assert.Contains(t, query, "p.client_id = $2")
	assert.Equal(t, []any{"in_progress", clientID}, args)
}

func TestListClientsQuery(t *testing.T) {
	query, args, err := listClientsQuery("   ")
	require.NoError(t, err)
	assert.NotContains(t, query, "ILIKE")
	assert.Contains(t, query, "p.client_id = c.id")
	assert.Empty(t, args)

	query, args, err = listClientsQuery(" acme ")
	require.NoError(t, err)
	assert.Contains(t, query, "c.name ILIKE $1")
	assert.Equal(t, []any{"%acme%"}, args)
}
