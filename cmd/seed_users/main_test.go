package main

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
)

const sampleCSV = `username,full_name,email,role,position,level,password
ana,Ana Pérez,ana@example.com,employee,Analista,3,clave1
luis,Luis O'Brien,luis@example.com,Manager,Gerente,1,clave2
`

func TestParseUsers_UTF8(t *testing.T) {
	users, err := parseUsers([]byte(sampleCSV))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana Pérez", users[0].FullName)
	assert.Equal(t, "manager", users[1].Role)
	assert.Equal(t, 1, users[1].Level)
}

func TestParseUsers_Latin1(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(sampleCSV))
	require.NoError(t, err)
	users, err := parseUsers(latin1)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", users[0].FullName)
}

func TestParseUsers_Errores(t *testing.T) {
	_, err := parseUsers([]byte("eva,Eva,e@x.com,visitante,Analista,3,x\n"))
	assert.ErrorContains(t, err, "rol desconocido")

	_, err = parseUsers([]byte("eva,Eva,e@x.com,employee,Analista,tres,x\n"))
	assert.ErrorContains(t, err, "level")

	_, err = parseUsers([]byte("eva,Eva,e@x.com,employee,Analista,3,x\neva,Eva,e@x.com,employee,Analista,3,y\n"))
	assert.ErrorContains(t, err, "duplicado")
}

func TestWriteSQL(t *testing.T) {
	users, err := parseUsers([]byte(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, users, bcrypt.MinCost))
	sql := buf.String()

	assert.Contains(t, sql, "('security')")
	assert.Contains(t, sql, "'Luis O''Brien'", "las comillas simples se escapan")
	assert.Contains(t, sql, "VALUES ('Gerente', 1)")
	assert.NotContains(t, sql, "clave1", "el password nunca sale en claro")

	hashes := regexp.MustCompile(`\$2a\$[^']+`).FindAllString(sql, -1)
	require.Len(t, hashes, 2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashes[0]), []byte("clave1")))
}
