package schema

import (
	"reflect"
	"testing"
)

type Account struct {
	ID       int     `po:"id,integer,primaryKey,serial"`
	Handle   string  `po:"handle,varchar(64),notNull,unique"`
	Balance  float64 `po:"balance,numeric(10,2),notNull,default(0)"`
	Note     *string `po:"note,varchar(255)"`
	Skipped string
}

type Membership struct {
	AccountID int `po:"account_id,integer,primaryKey,fk:accounts.id,ondelete:CASCADE"`
	GroupID   int `po:"group_id,integer,primaryKey,fk:groups.id,ondelete:CASCADE"`
}

func TestParser_Parse(t *testing.T) {
	RegisterTableName("Account", "accounts")

	parser := NewParser()
	table, err := parser.Parse(reflect.TypeOf(Account{}))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if table.Name != "accounts" {
		t.Errorf("table name = %q, want accounts", table.Name)
	}
	if len(table.Columns) != 4 {
		t.Fatalf("column count = %d, want 4 (untagged fields skipped)", len(table.Columns))
	}

	id, ok := table.Column("id")
	if !ok {
		t.Fatal("id column missing")
	}
	if !id.PrimaryKey || !id.AutoIncrement || !id.NotNull {
		t.Errorf("id flags = pk:%v serial:%v notNull:%v, want all true", id.PrimaryKey, id.AutoIncrement, id.NotNull)
	}

	handle, _ := table.Column("handle")
	if !handle.Unique || !handle.NotNull || handle.SQLType != "varchar(64)" {
		t.Errorf("handle = %+v, want unique notNull varchar(64)", handle)
	}

	balance, _ := table.Column("balance")
	if balance.SQLType != "numeric(10,2)" {
		t.Errorf("balance type = %q, want numeric(10,2) (parenthesized comma kept intact)", balance.SQLType)
	}
	if balance.Default == nil || *balance.Default != "0" {
		t.Errorf("balance default = %v, want 0", balance.Default)
	}

	if !table.IsPrimaryKey("id") || table.IsPrimaryKey("handle") {
		t.Error("IsPrimaryKey misreports columns")
	}
}

func TestParser_CompositePrimaryKeyAndForeignKeys(t *testing.T) {
	parser := NewParser()
	table, err := parser.Parse(reflect.TypeOf(&Membership{}))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(table.PrimaryKey) != 2 {
		t.Fatalf("primary key = %v, want composite of 2 columns", table.PrimaryKey)
	}
	if len(table.ForeignKeys) != 2 {
		t.Fatalf("foreign keys = %v, want 2", table.ForeignKeys)
	}

	fk := table.ForeignKeys[0]
	if fk.Column != "account_id" || fk.RefTable != "accounts" || fk.RefColumn != "id" || fk.OnDelete != "CASCADE" {
		t.Errorf("fk = %+v, want account_id -> accounts.id ON DELETE CASCADE", fk)
	}
}

func TestParser_DefaultTableName(t *testing.T) {
	type CartEntry struct {
		ID int `po:"id,integer,primaryKey,serial"`
	}

	parser := NewParser()
	table, err := parser.Parse(reflect.TypeOf(CartEntry{}))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if table.Name != "cart_entry" {
		t.Errorf("table name = %q, want cart_entry", table.Name)
	}
}

func TestParser_Errors(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Parse(reflect.TypeOf(42)); err == nil {
		t.Error("expected error for non-struct type")
	}

	type Empty struct {
		Name string
	}
	if _, err := parser.Parse(reflect.TypeOf(Empty{})); err == nil {
		t.Error("expected error for struct without po tags")
	}

	type BadFK struct {
		ID int `po:"id,integer,fk:nodot"`
	}
	if _, err := parser.Parse(reflect.TypeOf(BadFK{})); err == nil {
		t.Error("expected error for malformed fk reference")
	}
}

func TestSplitTag(t *testing.T) {
	tests := []struct {
		tag  string
		want []string
	}{
		{"id,integer,primaryKey", []string{"id", "integer", "primaryKey"}},
		{"price,numeric(10,2),notNull", []string{"price", "numeric(10,2)", "notNull"}},
		{"created_at,timestamptz,default(NOW())", []string{"created_at", "timestamptz", "default(NOW())"}},
	}

	for _, tt := range tests {
		got := splitTag(tt.tag)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTag(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}
