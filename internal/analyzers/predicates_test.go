package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threadlint/threadlint/internal/descriptor"
)

func TestIsUnsafeContainer(t *testing.T) {
	tests := []struct {
		name         string
		declaredType string
		want         bool
	}{
		{name: "hash map", declaredType: "HashMap<String, User>", want: true},
		{name: "array list", declaredType: "ArrayList<Integer>", want: true},
		{name: "linked list", declaredType: "LinkedList<Task>", want: true},
		{name: "tree set", declaredType: "TreeSet<Long>", want: true},
		{name: "map interface", declaredType: "Map<String, String>", want: true},
		{name: "list interface", declaredType: "List<String>", want: true},
		{name: "concurrent map interface excluded", declaredType: "ConcurrentMap<String, String>", want: false},
		{name: "concurrent navigable map excluded", declaredType: "ConcurrentNavigableMap<String, String>", want: false},
		// implementation names match even under a Concurrent prefix
		{name: "concurrent hash map matches through suffix", declaredType: "ConcurrentHashMap<String, String>", want: true},
		{name: "plain type", declaredType: "String", want: false},
		{name: "atomic type", declaredType: "AtomicInteger", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnsafeContainer(tt.declaredType))
		})
	}
}

func TestIsLegacyCollection(t *testing.T) {
	assert.True(t, isLegacyCollection("Vector<String>"))
	assert.True(t, isLegacyCollection("Hashtable<String, String>"))
	assert.True(t, isLegacyCollection("SynchronizedMap<String, String>"))
	assert.False(t, isLegacyCollection("HashMap<String, String>"))
}

func TestHasExecutorImport(t *testing.T) {
	tests := []struct {
		name    string
		imports []string
		want    bool
	}{
		{name: "executor service import", imports: []string{"java.util.concurrent.ExecutorService"}, want: true},
		{name: "executors factory import", imports: []string{"java.util.concurrent.Executors"}, want: true},
		{name: "wildcard concurrent import", imports: []string{"java.util.concurrent.*"}, want: true},
		{name: "package import", imports: []string{"java.util.concurrent"}, want: true},
		{name: "unrelated concurrent import", imports: []string{"java.util.concurrent.ConcurrentHashMap"}, want: false},
		{name: "no imports", imports: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasExecutorImport(tt.imports))
		})
	}
}

func TestHasLockImport(t *testing.T) {
	assert.True(t, hasLockImport([]string{"java.util.concurrent.locks.ReentrantLock"}))
	assert.True(t, hasLockImport([]string{"java.util.concurrent.locks.*"}))
	assert.False(t, hasLockImport([]string{"java.util.concurrent.ExecutorService"}))
	assert.False(t, hasLockImport(nil))
}

func TestIsMutatorMethod(t *testing.T) {
	tests := []struct {
		name   string
		method descriptor.MethodDescriptor
		want   bool
	}{
		{name: "void return", method: descriptor.MethodDescriptor{Name: "process", ReturnType: "void"}, want: true},
		{name: "setter with return value", method: descriptor.MethodDescriptor{Name: "setName", ReturnType: "boolean"}, want: true},
		{name: "add prefix", method: descriptor.MethodDescriptor{Name: "addItem", ReturnType: "int"}, want: true},
		{name: "remove prefix", method: descriptor.MethodDescriptor{Name: "removeItem", ReturnType: "boolean"}, want: true},
		{name: "put prefix", method: descriptor.MethodDescriptor{Name: "putIfMissing", ReturnType: "Object"}, want: true},
		{name: "getter", method: descriptor.MethodDescriptor{Name: "getName", ReturnType: "String"}, want: false},
		{name: "query method", method: descriptor.MethodDescriptor{Name: "size", ReturnType: "int"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			assert.Equal(t, tt.want, isMutatorMethod(&method))
		})
	}
}

func TestIsCounterName(t *testing.T) {
	assert.True(t, isCounterName("count"))
	assert.True(t, isCounterName("itemCount"))
	assert.True(t, isCounterName("INDEX"))
	assert.True(t, isCounterName("cacheSize"))
	assert.False(t, isCounterName("total"))
	assert.False(t, isCounterName("idx"))
}

func TestIsPrimitiveCounterType(t *testing.T) {
	assert.True(t, isPrimitiveCounterType("int"))
	assert.True(t, isPrimitiveCounterType("long"))
	assert.False(t, isPrimitiveCounterType("Integer"))
	assert.False(t, isPrimitiveCounterType("Long"))
	assert.False(t, isPrimitiveCounterType("double"))
}
