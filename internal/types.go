package internal

import "time"

// Access verdicts computed for every function record before any question is
// answered against it.
const (
	AccessPublic     = "public"
	AccessRestricted = "restricted"
	AccessInternal   = "internal"
)

// Access roles attached to restricted functions.
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// Contract 表示从区块浏览器获取的合约基础信息
type Contract struct {
	Address        string    `json:"address"`
	Name           string    `json:"name"`
	Code           string    `json:"contract"`
	ABI            string    `json:"abi"`
	Compiler       string    `json:"compiler"`
	IsOpenSource   bool      `json:"isOpenSource"`
	IsProxy        bool      `json:"isProxy"`
	Implementation string    `json:"implementation"`
	FetchedAt      time.Time `json:"fetchedAt"`
}

// ContractDeclaration is one textual "contract" declaration recovered from
// source. Discovery order is preserved.
type ContractDeclaration struct {
	Name     string   `json:"name"`
	Inherits []string `json:"inherits"`
}

// Param is a parameter or return value. Name is empty when the declaration
// only gave a type.
type Param struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// FunctionRecord has a two-phase lifecycle: the syntactic fields are fixed at
// parse time, Access and AccessRole are filled in by the classify stage.
type FunctionRecord struct {
	Name       string   `json:"name"`
	Params     []Param  `json:"params"`
	Visibility string   `json:"visibility"`
	Mutability string   `json:"mutability"`
	Returns    []Param  `json:"returns"`
	Modifiers  []string `json:"modifiers"`
	Access     string   `json:"access,omitempty"`
	AccessRole string   `json:"access_role,omitempty"`
}

// StateVariable is a best-effort state variable record. SemanticRole is
// filled in by the summary stage when the name matches a storage heuristic.
type StateVariable struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	SemanticRole string `json:"semantic_role,omitempty"`
}

// Knowledge 合约知识库：ABI 与源码两个视图合并后的记录集
// Built once per contract and annotated in place by downstream stages; not
// safe for concurrent mutation.
type Knowledge struct {
	Address        string                `json:"address"`
	Pragma         string                `json:"pragma,omitempty"`
	Contracts      []ContractDeclaration `json:"contracts"`
	Imports        []string              `json:"imports"`
	Modifiers      []string              `json:"modifiers"`
	Functions      []FunctionRecord      `json:"functions"`
	StateVariables []StateVariable       `json:"state_variables"`
	Events         []string              `json:"events"`
	ContractType   string                `json:"contract_type,omitempty"`
}
