package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_DSN(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "with ssl mode",
			node: Node{Host: "db", Port: "5432", Username: "stay", Password: "secret", Name: "stayengine", SSLMode: "disable"},
			want: "postgres://stay:secret@db:5432/stayengine?sslmode=disable",
		},
		{
			name: "escapes credentials",
			node: Node{Host: "db", Port: "5432", Username: "stay", Password: "p@ss/word", Name: "stayengine"},
			want: "postgres://stay:p%40ss%2Fword@db:5432/stayengine",
		},
		{
			name: "ipv6 host",
			node: Node{Host: "::1", Port: "5432", Username: "stay", Password: "x", Name: "stayengine"},
			want: "postgres://stay:x@[::1]:5432/stayengine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.DSN())
		})
	}
}

func TestConnect_GivesUpAfterRetries(t *testing.T) {
	db := Connect(Node{Role: "test", Host: "127.0.0.1", Port: "1", Name: "none"}, Pool{MaxRetry: 1})
	assert.Nil(t, db)
}
