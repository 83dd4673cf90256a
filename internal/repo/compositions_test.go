package repo_test

import (
	"context"
	"testing"

	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/repo"
)

func newInstance(id string, container string) *entity.Instance {
	return entity.NewInstance(entity.InstanceId(id), "particle-drift", entity.ContainerId(container), nil)
}

func Test_CompositionsCount(t *testing.T) {
	compositions := repo.NewCompositions()
	compositions.Save(context.TODO(), newInstance("a1", "sandbox"))
	compositions.Save(context.TODO(), newInstance("a2", "sandbox"))
	compositions.Save(context.TODO(), newInstance("b1", "preview"))

	tests := []struct {
		name      string
		container entity.ContainerId
		want      int
	}{
		{
			name:      "count sandbox",
			container: "sandbox",
			want:      2,
		},
		{
			name:      "count other container",
			container: "preview",
			want:      1,
		},
		{
			name:      "count unknown container",
			container: "missing",
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := compositions.Count(context.TODO(), tt.container); got != tt.want {
				t.Errorf("Compositions.Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func Test_CompositionsListByContainerKeepsOrder(t *testing.T) {
	ctx := context.TODO()
	compositions := repo.NewCompositions()

	for _, id := range []string{"c", "a", "b"} {
		compositions.Save(ctx, newInstance(id, "sandbox"))
	}
	compositions.Save(ctx, newInstance("x", "other"))
	// saving again keeps the original position
	compositions.Save(ctx, newInstance("c", "sandbox"))

	instances, err := compositions.ListByContainer(ctx, "sandbox")
	if err != nil {
		t.Fatalf("Compositions.ListByContainer() error = %v", err)
	}

	want := []entity.InstanceId{"c", "a", "b"}
	if len(instances) != len(want) {
		t.Fatalf("Compositions.ListByContainer() = %d instances, want %d", len(instances), len(want))
	}
	for i, instance := range instances {
		if instance.Id() != want[i] {
			t.Errorf("Compositions.ListByContainer()[%d] = %v, want %v", i, instance.Id(), want[i])
		}
	}
}

func Test_CompositionsDelete(t *testing.T) {
	ctx := context.TODO()
	compositions := repo.NewCompositions()

	compositions.Save(ctx, newInstance("a", "sandbox"))
	compositions.Save(ctx, newInstance("b", "sandbox"))

	compositions.Delete(ctx, "a")
	compositions.Delete(ctx, "a")

	if got := compositions.Count(ctx, "sandbox"); got != 1 {
		t.Errorf("Compositions.Count() = %d, want 1", got)
	}
	instances, _ := compositions.ListByContainer(ctx, "sandbox")
	if len(instances) != 1 || instances[0].Id() != "b" {
		t.Errorf("Compositions.ListByContainer() = %v, want only b", instances)
	}

	compositions.Delete(ctx, "b")
	instances, _ = compositions.ListByContainer(ctx, "sandbox")
	if len(instances) != 0 {
		t.Errorf("Compositions.ListByContainer() = %d instances, want 0", len(instances))
	}
}
