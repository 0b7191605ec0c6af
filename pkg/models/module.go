package models

// ModuleForeignKey annotates a module with an outgoing reference to the
// module owning the parent key.
type ModuleForeignKey struct {
	References   string `json:"references"` // parent module name
	ParentTable  string `json:"parent_table"`
	ParentColumn string `json:"parent_column"`
	ChildTable   string `json:"child_table"`
	ChildColumn  string `json:"child_column"`
}

// Module is a named cluster of tables sharing one logical business entity.
// Modules are derived purely from key candidates and relationship edges and
// recomputed on each run; they have no independent identity.
type Module struct {
	Name        string             `json:"name"`
	Tables      []string           `json:"tables"`
	Columns     []string           `json:"columns"`
	PrimaryKey  string             `json:"primary_key,omitempty"`
	ForeignKeys []ModuleForeignKey `json:"foreign_keys,omitempty"`
}

// SchemaStructure is the composed module view of the dataset: an ordered
// list of populated modules, the tables no module claimed, and a rendered
// tree for display.
type SchemaStructure struct {
	Modules   []Module `json:"modules"`
	Ungrouped []string `json:"ungrouped_tables,omitempty"`
	Tree      string   `json:"structure_tree"`
}
