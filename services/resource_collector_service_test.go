package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubealloc/lib/aggregate"
	"github.com/kubealloc/lib/quantity"
)

func TestNodeObservations(t *testing.T) {
	node := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "node-1"},
		Status: corev1.NodeStatus{
			Allocatable: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("4"),
				corev1.ResourceMemory: resource.MustParse("16Gi"),
			},
		},
	}

	observations, err := NodeObservations(node)
	require.NoError(t, err)
	require.Len(t, observations, 2)

	byKind := map[string]aggregate.Observation{}
	for _, o := range observations {
		byKind[o.Kind] = o
	}

	cpu := byKind["cpu"]
	assert.Equal(t, aggregate.UsageAllocatable, cpu.Usage)
	assert.Equal(t, "node-1", cpu.Location.NodeName)
	assert.Equal(t, 0, cpu.Quantity.Cmp(quantity.MustParse("4")))

	memory := byKind["memory"]
	assert.Equal(t, 0, memory.Quantity.Cmp(quantity.MustParse("16Gi")))
}

func TestPodObservations(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web-0", Namespace: "default"},
		Spec: corev1.PodSpec{
			NodeName: "node-1",
			Containers: []corev1.Container{
				{
					Name: "app",
					Resources: corev1.ResourceRequirements{
						Requests: corev1.ResourceList{
							corev1.ResourceCPU: resource.MustParse("500m"),
						},
						Limits: corev1.ResourceList{
							corev1.ResourceCPU: resource.MustParse("1"),
						},
					},
				},
			},
		},
		Status: corev1.PodStatus{Phase: corev1.PodRunning},
	}

	observations, err := PodObservations(pod)
	require.NoError(t, err)
	require.Len(t, observations, 2)

	var request, limit aggregate.Observation
	for _, o := range observations {
		switch o.Usage {
		case aggregate.UsageRequested:
			request = o
		case aggregate.UsageLimit:
			limit = o
		}
	}

	assert.Equal(t, "cpu", request.Kind)
	assert.Equal(t, 0, request.Quantity.Cmp(quantity.MustParse("500m")))
	assert.Equal(t, aggregate.Location{
		NodeName:      "node-1",
		Namespace:     "default",
		PodName:       "web-0",
		ContainerName: "app",
	}, request.Location)

	assert.Equal(t, 0, limit.Quantity.Cmp(quantity.MustParse("1")))
}

func TestPodObservationsNominatedNodeWins(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web-0", Namespace: "default"},
		Spec: corev1.PodSpec{
			NodeName: "node-1",
			Containers: []corev1.Container{
				{
					Name: "app",
					Resources: corev1.ResourceRequirements{
						Requests: corev1.ResourceList{
							corev1.ResourceCPU: resource.MustParse("100m"),
						},
					},
				},
			},
		},
		Status: corev1.PodStatus{
			Phase:             corev1.PodRunning,
			NominatedNodeName: "node-2",
		},
	}

	observations, err := PodObservations(pod)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, "node-2", observations[0].Location.NodeName)
}

func TestPodObservationsSkipsCompletedPods(t *testing.T) {
	for _, phase := range []corev1.PodPhase{corev1.PodSucceeded, corev1.PodFailed} {
		pod := &corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "job-0", Namespace: "default"},
			Spec: corev1.PodSpec{
				Containers: []corev1.Container{
					{
						Name: "app",
						Resources: corev1.ResourceRequirements{
							Requests: corev1.ResourceList{
								corev1.ResourceCPU: resource.MustParse("1"),
							},
						},
					},
				},
			},
			Status: corev1.PodStatus{Phase: phase},
		}

		observations, err := PodObservations(pod)
		require.NoError(t, err)
		assert.Empty(t, observations, "phase %s", phase)
	}
}
