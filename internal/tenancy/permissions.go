package tenancy

// Entity identifies a record type guarded by the permission table.
type Entity string

// Guarded entity types.
const (
	EntitySchool      Entity = "school"
	EntityStaff       Entity = "staff"
	EntityClass       Entity = "class"
	EntitySubject     Entity = "subject"
	EntityStudent     Entity = "student"
	EntityActivity    Entity = "activity"
	EntityEvaluation  Entity = "evaluation"
	EntityGrade       Entity = "grade"
	EntityObservation Entity = "observation"
	EntityCondition   Entity = "condition"
	EntityInsight     Entity = "insight"
)

// Operation is the class of action being attempted.
type Operation string

// Guarded operations.
const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Entities returns every guarded entity type.
func Entities() []Entity {
	return []Entity{
		EntitySchool, EntityStaff, EntityClass, EntitySubject, EntityStudent,
		EntityActivity, EntityEvaluation, EntityGrade, EntityObservation,
		EntityCondition, EntityInsight,
	}
}

// Operations returns every guarded operation.
func Operations() []Operation {
	return []Operation{OpRead, OpCreate, OpUpdate, OpDelete}
}

type opSet map[Operation]struct{}

func ops(list ...Operation) opSet {
	set := make(opSet, len(list))
	for _, op := range list {
		set[op] = struct{}{}
	}
	return set
}

// Observations and insights are append-only: no role may update them, and
// their rows are removed only by the student cascade. School mutations are
// reserved for administrators. Teachers write activities and evaluations
// (self-ownership is enforced by the services), grades, observations,
// conditions and insights, and read everything else within their school.
var permissions = map[Role]map[Entity]opSet{
	RoleAdministrator: {
		EntitySchool:      ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityStaff:       ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityClass:       ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntitySubject:     ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityStudent:     ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityActivity:    ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityEvaluation:  ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityGrade:       ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityObservation: ops(OpRead, OpCreate),
		EntityCondition:   ops(OpRead, OpCreate, OpDelete),
		EntityInsight:     ops(OpRead, OpCreate),
	},
	RoleSupervisor: {
		EntitySchool:      ops(OpRead),
		EntityStaff:       ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityClass:       ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntitySubject:     ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityStudent:     ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityActivity:    ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityEvaluation:  ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityGrade:       ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityObservation: ops(OpRead, OpCreate),
		EntityCondition:   ops(OpRead, OpCreate, OpDelete),
		EntityInsight:     ops(OpRead, OpCreate),
	},
	RoleTeacher: {
		EntitySchool:      ops(OpRead),
		EntityStaff:       ops(OpRead),
		EntityClass:       ops(OpRead),
		EntitySubject:     ops(OpRead),
		EntityStudent:     ops(OpRead),
		EntityActivity:    ops(OpRead, OpCreate, OpUpdate),
		EntityEvaluation:  ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityGrade:       ops(OpRead, OpCreate, OpUpdate, OpDelete),
		EntityObservation: ops(OpRead, OpCreate),
		EntityCondition:   ops(OpRead, OpCreate, OpDelete),
		EntityInsight:     ops(OpRead, OpCreate),
	},
}

// Can reports whether role may perform op on entity. Unknown roles, entities
// or operations are denied.
func Can(role Role, entity Entity, op Operation) bool {
	table, ok := permissions[role]
	if !ok {
		return false
	}
	set, ok := table[entity]
	if !ok {
		return false
	}
	_, ok = set[op]
	return ok
}
