package domain

// TaskKind identifies the variant of a BuildTask.
type TaskKind uint8

const (
	KindCompileSource TaskKind = iota
	KindCompileModuleInterface
	KindCompileModulePartition
	KindLinkExecutable
	KindLinkLibrary
	KindLinkModuleLibrary
)

var taskKindNames = [...]string{
	KindCompileSource:          "compile",
	KindCompileModuleInterface: "compile-interface",
	KindCompileModulePartition: "compile-partition",
	KindLinkExecutable:         "link-executable",
	KindLinkLibrary:            "link-library",
	KindLinkModuleLibrary:      "link-module",
}

func (k TaskKind) String() string {
	if int(k) < len(taskKindNames) {
		return taskKindNames[k]
	}
	return "unknown"
}

// BuildTask is a unit of work handed to a downstream executor.
type BuildTask interface {
	Kind() TaskKind
	// Target is the source path, project name or module name the task builds.
	Target() string
	// Inputs are the tasks that must complete first, in insertion order.
	Inputs() []BuildTask
	// AddInput appends without deduplicating; callers guard against repeats.
	AddInput(t BuildTask)
	isBuildTask()
}

// TaskID returns the graph identity of a task.
func TaskID(t BuildTask) string {
	return t.Kind().String() + ":" + t.Target()
}

type taskInputs struct {
	inputs []BuildTask
}

func (t *taskInputs) Inputs() []BuildTask {
	return t.inputs
}

func (t *taskInputs) AddInput(in BuildTask) {
	t.inputs = append(t.inputs, in)
}

// HasInput reports whether in is already an input of t.
func HasInput(t, in BuildTask) bool {
	for _, existing := range t.Inputs() {
		if existing == in {
			return true
		}
	}
	return false
}

// CompileSourceTask compiles a plain translation unit or a module implementation unit.
type CompileSourceTask struct {
	taskInputs
	Source *Source
}

// CompileModuleInterfaceTask compiles a primary module interface unit.
type CompileModuleInterfaceTask struct {
	taskInputs
	Source *Source
}

// CompileModulePartitionTask compiles a module partition unit.
type CompileModulePartitionTask struct {
	taskInputs
	Source *Source
}

// LinkExecutableTask links an executable project.
type LinkExecutableTask struct {
	taskInputs
	Project *Project
}

// LinkLibraryTask links a library project.
type LinkLibraryTask struct {
	taskInputs
	Project *Project
}

// LinkModuleLibraryTask links the objects of one module.
type LinkModuleLibraryTask struct {
	taskInputs
	Module *Module
}

func (*CompileSourceTask) Kind() TaskKind          { return KindCompileSource }
func (*CompileModuleInterfaceTask) Kind() TaskKind { return KindCompileModuleInterface }
func (*CompileModulePartitionTask) Kind() TaskKind { return KindCompileModulePartition }
func (*LinkExecutableTask) Kind() TaskKind         { return KindLinkExecutable }
func (*LinkLibraryTask) Kind() TaskKind            { return KindLinkLibrary }
func (*LinkModuleLibraryTask) Kind() TaskKind      { return KindLinkModuleLibrary }

func (t *CompileSourceTask) Target() string          { return sourcePath(t.Source) }
func (t *CompileModuleInterfaceTask) Target() string { return sourcePath(t.Source) }
func (t *CompileModulePartitionTask) Target() string { return sourcePath(t.Source) }
func (t *LinkExecutableTask) Target() string         { return t.Project.Name }
func (t *LinkLibraryTask) Target() string            { return t.Project.Name }
func (t *LinkModuleLibraryTask) Target() string      { return t.Module.Name }

func (*CompileSourceTask) isBuildTask()          {}
func (*CompileModuleInterfaceTask) isBuildTask() {}
func (*CompileModulePartitionTask) isBuildTask() {}
func (*LinkExecutableTask) isBuildTask()         {}
func (*LinkLibraryTask) isBuildTask()            {}
func (*LinkModuleLibraryTask) isBuildTask()      {}

func sourcePath(s *Source) string {
	if s == nil {
		return ""
	}
	return s.Path
}
