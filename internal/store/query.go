package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-export-service/internal/model"
	"go-export-service/internal/schema"
)

// buildWhere turns a FilterSet into a WHERE clause with bound arguments.
// Unknown filter fields are rejected, never silently dropped.
func buildWhere(et *schema.ExportType, filters model.FilterSet) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	// Deterministic clause order keeps queries cacheable and tests stable
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var clauses []string
	var args []any

	for _, field := range fields {
		col, ok := et.FilterColumn(field)
		if !ok {
			return "", nil, model.Validationf("unknown filter field %q for export type %q", field, et.Name)
		}

		switch v := filters[field].(type) {
		case []any:
			if len(v) == 0 {
				// Empty membership set matches nothing
				clauses = append(clauses, "1 = 0")
				continue
			}
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(v)), ", ")
			clauses = append(clauses, fmt.Sprintf("%s IN (%s)", col, placeholders))
			args = append(args, v...)
		case map[string]any:
			min, hasMin := v["min"]
			max, hasMax := v["max"]
			if !hasMin && !hasMax {
				return "", nil, model.Validationf("range filter on %q needs min and/or max", field)
			}
			for key := range v {
				if key != "min" && key != "max" {
					return "", nil, model.Validationf("unknown range key %q in filter %q", key, field)
				}
			}
			if hasMin {
				clauses = append(clauses, fmt.Sprintf("%s >= ?", col))
				args = append(args, min)
			}
			if hasMax {
				clauses = append(clauses, fmt.Sprintf("%s <= ?", col))
				args = append(args, max)
			}
		default:
			clauses = append(clauses, fmt.Sprintf("%s = ?", col))
			args = append(args, v)
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// CountRecords runs an indexed COUNT for the filter set. It never
// materializes rows, so it stays cheap even for large tables.
func CountRecords(et *schema.ExportType, filters model.FilterSet) (int, error) {
	where, args, err := buildWhere(et, filters)
	if err != nil {
		return 0, err
	}

	var total int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", et.Table, where)
	if err := db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return total, nil
}

// PreviewRecords returns up to limit rows in the same shape the full export
// would produce for the template. No files are created.
func PreviewRecords(et *schema.ExportType, tmpl schema.Template, filters model.FilterSet, limit int) ([]map[string]any, error) {
	where, args, err := buildWhere(et, filters)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id LIMIT %d",
		columnList(tmpl), et.Table, where, limit)
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("preview query failed: %w", err)
	}
	defer rows.Close()

	preview := make([]map[string]any, 0, limit)
	for rows.Next() {
		values, err := scanRow(rows, len(tmpl.Columns))
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(tmpl.Columns))
		for i, col := range tmpl.Columns {
			row[col.Name] = normalizeValue(values[i])
		}
		preview = append(preview, row)
	}
	return preview, rows.Err()
}

// StreamRecords reads matching rows in batchSize batches and hands each
// batch of formatted CSV values to fn. Used by the export engine so chunked
// exports never hold the full result set in memory.
func StreamRecords(ctx context.Context, et *schema.ExportType, tmpl schema.Template, filters model.FilterSet, batchSize int, fn func(batch [][]string) error) error {
	where, args, err := buildWhere(et, filters)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id", columnList(tmpl), et.Table, where)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("export query failed: %w", err)
	}
	defer rows.Close()

	batch := make([][]string, 0, batchSize)
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		values, err := scanRow(rows, len(tmpl.Columns))
		if err != nil {
			return err
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		batch = append(batch, record)

		if len(batch) == batchSize {
			if err := fn(batch); err != nil {
				return err
			}
			batch = make([][]string, 0, batchSize)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(rows rowScanner, n int) ([]any, error) {
	values := make([]any, n)
	dest := make([]any, n)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("row scan failed: %w", err)
	}
	return values, nil
}

func columnList(tmpl schema.Template) string {
	cols := make([]string, len(tmpl.Columns))
	for i, col := range tmpl.Columns {
		cols[i] = col.DBColumn
	}
	return strings.Join(cols, ", ")
}

// normalizeValue converts driver values into JSON-friendly ones
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return v
	}
}

// formatValue renders a driver value as a CSV cell
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
