// SPDX-License-Identifier: MIT

// Package quantum evolves a localized excitation on a percolated graph and
// measures how far it spreads.
//
// States are complex vectors expressed in the eigenbasis of a Hamiltonian H
// (see package spectral). The pipeline for one realization is:
//
//	psi0 := InitialState(V, start)        // Vᴴ·e_start
//	psiT := Evolve(values, psi0, t)       // exp(-i·t·λ_k)·psi0_k
//	D    := HammingOperator(V, start)     // Vᴴ·diag(popcount(i XOR start))·V
//	hd   := Expectation(psiT, D)          // ⟨psiT|D|psiT⟩, real
//
// Trajectory runs the pipeline over a time grid. FindStartSite recovers the
// canonical origin inside an extracted cluster Hamiltonian.
//
// Evolution is exact in the eigenbasis and preserves the norm for every real t.
package quantum
