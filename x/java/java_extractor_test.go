package java_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/level-lens/model"
)

func relationKeys(rels []*model.Relation) []string {
	keys := make([]string, len(rels))
	for i, rel := range rels {
		keys[i] = fmt.Sprintf("%s %s -> %s", rel.Type, rel.SourceQN, rel.TargetQN)
	}
	return keys
}

func TestJavaExtractor_Hierarchy(t *testing.T) {
	r := analyze(t, src("Circle.java", `
interface Shape {}
interface Named extends Shape {}
class Base {}

class Circle extends Base implements Named {
    class Inner {}
}
`))
	require.Empty(t, messages(r))

	assert.ElementsMatch(t, []string{
		"EXTEND Named -> Shape",
		"EXTEND Circle -> Base",
		"IMPLEMENT Circle -> Named",
		"CONTAIN Circle -> Circle$Inner",
	}, relationKeys(r.Relations))
}

func TestJavaExtractor_AnonymousAndExternal(t *testing.T) {
	r := analyze(t, src("Task.java", `
class Task {
    Runnable make() {
        return new Runnable() {
            public void run() {}
        };
    }
}
`))
	require.Empty(t, messages(r))

	assert.ElementsMatch(t, []string{
		"CONTAIN Task -> Task$1",
		"IMPLEMENT Task$1 -> java.lang.Runnable",
	}, relationKeys(r.Relations))

	for _, rel := range r.Relations {
		if rel.Type == model.Implement {
			assert.True(t, rel.External)
		}
	}
}
