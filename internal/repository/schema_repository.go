package repository

import (
	"database/sql"
)

type ColumnInfo struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Nullable bool   `json:"nullable"`
}

type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

// SchemaRepository alimenta o visualizador administrativo de schema.
type SchemaRepository struct {
	DB *sql.DB
}

func (r *SchemaRepository) ListTables() ([]TableInfo, error) {
	rows, err := r.DB.Query(`
		SELECT table_name, column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public'
		ORDER BY table_name, ordinal_position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []TableInfo
	byName := map[string]int{}
	for rows.Next() {
		var table, column, dataType, nullable string
		if err := rows.Scan(&table, &column, &dataType, &nullable); err != nil {
			return nil, err
		}
		idx, ok := byName[table]
		if !ok {
			tables = append(tables, TableInfo{Name: table})
			idx = len(tables) - 1
			byName[table] = idx
		}
		tables[idx].Columns = append(tables[idx].Columns, ColumnInfo{
			Name:     column,
			DataType: dataType,
			Nullable: nullable == "YES",
		})
	}
	return tables, rows.Err()
}
