package carbon

import "testing"

func BenchmarkEstimator_Calculate(b *testing.B) {
	estimator := NewDefaultEstimator()
	in := baseInput()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = estimator.Calculate(in)
	}
}

func BenchmarkEstimator_CalculateParallel(b *testing.B) {
	estimator := NewDefaultEstimator()
	in := baseInput()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = estimator.Calculate(in)
		}
	})
}

func BenchmarkComputeEquivalences(b *testing.B) {
	table := DefaultEquivalences()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ComputeEquivalences(4620, table)
	}
}

func BenchmarkParseOrZero(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ParseOrZero("1234,5")
	}
}
