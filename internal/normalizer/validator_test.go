package normalizer

import (
	"errors"
	"strings"
	"testing"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(DefaultAliases())

	raw := NewRawTable(TableInfluencers, "influencers.csv", []string{"ID", "Name"}, [][]string{{"1", "A"}})

	if err := v.Validate(TableInfluencers, raw); err != nil {
		t.Errorf("Validate returned unexpected error for valid table: %v", err)
	}
}

func TestValidator_Validate_Errors(t *testing.T) {
	v := NewValidator(DefaultAliases())

	tests := []struct {
		name    string
		table   string
		data    *RawTable
		wantErr error
	}{
		{
			name:    "Nil table",
			table:   TablePosts,
			data:    nil,
			wantErr: ErrMissingTable,
		},
		{
			name:    "No header",
			table:   TablePosts,
			data:    NewRawTable(TablePosts, "posts.csv", nil, nil),
			wantErr: ErrNoHeader,
		},
		{
			name:    "Missing key column",
			table:   TableTracking,
			data:    NewRawTable(TableTracking, "tracking.csv", []string{"campaign", "revenue"}, nil),
			wantErr: ErrMissingKeyColumn,
		},
		{
			name:    "Unknown table",
			table:   "orders",
			data:    NewRawTable("orders", "", []string{"id"}, nil),
			wantErr: ErrUnknownTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.table, tt.data)
			if err == nil {
				t.Fatal("Validate expected error but got nil")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tt.wantErr)
			}

			if !IsConfigurationError(err) {
				t.Errorf("Validate error should be a ConfigurationError, got %T", err)
			}

			if !strings.Contains(err.Error(), tt.table) {
				t.Errorf("error %q should name the table %s", err, tt.table)
			}
		})
	}
}

func TestValidator_Validate_AliasKeyColumn(t *testing.T) {
	v := NewValidator(DefaultAliases())

	raw := NewRawTable(TablePosts, "", []string{"Creator_ID", "likes"}, nil)

	if err := v.Validate(TablePosts, raw); err != nil {
		t.Errorf("alias spelling of the key column should be accepted: %v", err)
	}
}
