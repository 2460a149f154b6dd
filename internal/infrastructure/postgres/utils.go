package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// maxInClause teto de ids por consulta de conjunto. O store limita
// consultas por pertencimento a 30 ids; conjuntos maiores são
// particionados em blocos e os resultados unidos.
const maxInClause = 30

// isUniqueViolation verifica se um erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// chunkStrings particiona ids em blocos de no máximo size elementos,
// preservando a ordem. Utilitário genérico do padrão "IN-clause limitado".
func chunkStrings(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
