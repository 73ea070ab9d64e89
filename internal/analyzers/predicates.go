package analyzers

import (
	"strings"

	"github.com/threadlint/threadlint/internal/descriptor"
)

// The predicates below are the entire behavioral contract of the analyzers.
// They operate on the opaque declared-type text exactly as extracted, generics
// included, using plain substring matching. Each doc comment states the full
// match set; changing one changes what the tool reports.

// unsafeContainerNames lists collection implementations with no internal
// synchronization.
var unsafeContainerNames = []string{"HashMap", "ArrayList", "HashSet", "TreeMap", "TreeSet", "LinkedList"}

// isUnsafeContainer matches declared types containing one of
// unsafeContainerNames, or containing Map/List/Set without containing
// Concurrent. The implementation-name clause carries no Concurrent exclusion,
// so ConcurrentHashMap still matches through its HashMap suffix; that noise
// is accepted and pinned by tests.
func isUnsafeContainer(declaredType string) bool {
	for _, name := range unsafeContainerNames {
		if strings.Contains(declaredType, name) {
			return true
		}
	}
	if strings.Contains(declaredType, "Concurrent") {
		return false
	}
	return isContainerType(declaredType)
}

// isContainerType matches declared types containing Map, List or Set.
func isContainerType(declaredType string) bool {
	return strings.Contains(declaredType, "Map") ||
		strings.Contains(declaredType, "List") ||
		strings.Contains(declaredType, "Set")
}

// isPlainUnsafeCollection matches the unsynchronized collection
// implementations reviewed by ConcurrentCollections: HashMap, ArrayList,
// HashSet, TreeMap, TreeSet.
func isPlainUnsafeCollection(declaredType string) bool {
	for _, name := range []string{"HashMap", "ArrayList", "HashSet", "TreeMap", "TreeSet"} {
		if strings.Contains(declaredType, name) {
			return true
		}
	}
	return false
}

// isLegacyCollection matches Vector, Hashtable and synchronized-wrapper
// names (any type containing "synchronized", case-insensitive).
func isLegacyCollection(declaredType string) bool {
	return strings.Contains(declaredType, "Vector") ||
		strings.Contains(declaredType, "Hashtable") ||
		strings.Contains(strings.ToLower(declaredType), "synchronized")
}

// isExecutorType matches declared types containing ExecutorService or
// ThreadPoolExecutor. ScheduledExecutorService matches through its suffix.
func isExecutorType(declaredType string) bool {
	return strings.Contains(declaredType, "ExecutorService") ||
		strings.Contains(declaredType, "ThreadPoolExecutor")
}

// hasExecutorImport reports whether the unit imports executor machinery: an
// import containing "Executor", the plain "java.util.concurrent" package, or
// a "java.util.concurrent.*" wildcard.
func hasExecutorImport(imports []string) bool {
	for _, imp := range imports {
		if strings.Contains(imp, "Executor") ||
			imp == "java.util.concurrent" ||
			strings.HasSuffix(imp, "java.util.concurrent.*") {
			return true
		}
	}
	return false
}

// hasLockImport reports whether the unit imports anything from
// java.util.concurrent.locks.
func hasLockImport(imports []string) bool {
	for _, imp := range imports {
		if strings.Contains(imp, "java.util.concurrent.locks") {
			return true
		}
	}
	return false
}

// isLockType matches declared types containing "Lock": Lock, ReentrantLock,
// ReadWriteLock, ReentrantReadWriteLock, StampedLock.
func isLockType(declaredType string) bool {
	return strings.Contains(declaredType, "Lock")
}

// mutatorPrefixes are method-name prefixes treated as state mutations.
var mutatorPrefixes = []string{"set", "add", "remove", "put"}

// isMutatorMethod matches methods returning void or named with a mutator
// prefix. A signature heuristic only; bodies are never inspected.
func isMutatorMethod(method *descriptor.MethodDescriptor) bool {
	if method.ReturnType == "void" {
		return true
	}
	for _, prefix := range mutatorPrefixes {
		if strings.HasPrefix(method.Name, prefix) {
			return true
		}
	}
	return false
}

// isPrimitiveCounterType matches the exact primitive types int and long.
// Boxed Integer/Long deliberately do not match.
func isPrimitiveCounterType(declaredType string) bool {
	return declaredType == "int" || declaredType == "long"
}

// isCounterName matches field names containing count, index or size,
// case-insensitive.
func isCounterName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "count") ||
		strings.Contains(lower, "index") ||
		strings.Contains(lower, "size")
}

// hasShutdownMethod reports whether any method name contains shutdown or
// close, case-insensitive.
func hasShutdownMethod(class *descriptor.ClassDescriptor) bool {
	for _, method := range class.Methods {
		lower := strings.ToLower(method.Name)
		if strings.Contains(lower, "shutdown") || strings.Contains(lower, "close") {
			return true
		}
	}
	return false
}
