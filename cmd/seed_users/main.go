// seed_users genera un script SQL para poblar roles, cargos y usuarios a partir de un CSV.
//
// Formato: username,full_name,email,role,position,level,password
// La primera fila puede ser la cabecera. Acepta UTF-8 o ISO-8859-1 (exportes de Excel).
//
// Uso: go run ./cmd/seed_users usuarios.csv [salida.sql]
// Por defecto escribe: internal/infrastructure/postgres/migrations/002_seed_users.sql
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/visit-pipeline/internal/domain/access"
)

type seedUser struct {
	Username string
	FullName string
	Email    string
	Role     string
	Position string
	Level    int
	Password string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_users usuarios.csv [salida.sql]")
		os.Exit(2)
	}
	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	users, err := parseUsers(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_users.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}
	var buf bytes.Buffer
	if err := writeSQL(&buf, users, bcrypt.DefaultCost); err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d usuarios\n", outPath, len(users))
}

// parseUsers decodifica el CSV. Si el contenido no es UTF-8 válido se lee como ISO-8859-1.
func parseUsers(raw []byte) ([]seedUser, error) {
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(src)
	r.FieldsPerRecord = 7
	r.TrimLeadingSpace = true

	var users []seedUser
	seen := make(map[string]bool)
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "username") {
			continue
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		u := seedUser{
			Username: rec[0],
			FullName: rec[1],
			Email:    rec[2],
			Role:     strings.ToLower(rec[3]),
			Position: rec[4],
			Password: rec[6],
		}
		if u.Username == "" || u.Password == "" || u.Position == "" {
			return nil, fmt.Errorf("línea %d: username, position y password son requeridos", line)
		}
		if !access.IsValidRole(u.Role) {
			return nil, fmt.Errorf("línea %d: rol desconocido %q", line, rec[3])
		}
		if u.Level, err = strconv.Atoi(rec[5]); err != nil {
			return nil, fmt.Errorf("línea %d: level inválido %q", line, rec[5])
		}
		if seen[u.Username] {
			return nil, fmt.Errorf("línea %d: username duplicado %q", line, u.Username)
		}
		seen[u.Username] = true
		users = append(users, u)
	}
	return users, nil
}

// writeSQL escribe roles, cargos y usuarios como upserts. Los passwords salen hasheados con bcrypt.
func writeSQL(w io.Writer, users []seedUser, cost int) error {
	fmt.Fprintln(w, "-- Generado por cmd/seed_users. No editar a mano.")
	fmt.Fprintln(w, "BEGIN;")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "INSERT INTO roles (name) VALUES")
	roles := access.Roles()
	for i, r := range roles {
		sep := ","
		if i == len(roles)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "    (%s)%s\n", quote(r), sep)
	}
	fmt.Fprintln(w, "ON CONFLICT (name) DO NOTHING;")
	fmt.Fprintln(w)

	// Cargos únicos, orden estable por nombre
	positions := make(map[string]int)
	for _, u := range users {
		positions[u.Position] = u.Level
	}
	var names []string
	for n := range positions {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "INSERT INTO positions (name, level) VALUES (%s, %d) ON CONFLICT (name) DO UPDATE SET level = EXCLUDED.level;\n",
			quote(n), positions[n])
	}
	fmt.Fprintln(w)

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return fmt.Errorf("hash %s: %w", u.Username, err)
		}
		fmt.Fprintf(w, `INSERT INTO users (username, password, full_name, email, role_id, position_id)
SELECT %s, %s, %s, %s, r.id, p.id FROM roles r, positions p WHERE r.name = %s AND p.name = %s
ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password, full_name = EXCLUDED.full_name,
    email = EXCLUDED.email, role_id = EXCLUDED.role_id, position_id = EXCLUDED.position_id;
`, quote(u.Username), quote(string(hash)), quote(u.FullName), quote(u.Email), quote(u.Role), quote(u.Position))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "COMMIT;")
	return nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
