// Package models defines the core domain models for the S.a.s. tax
// calculator.
//
// # Models
//
//   - Partner: a company partner with a profit share and a role
//   - Company: a saved company profile with its partner set
//   - FinancialInput: the raw figures for one calculation
//   - TaxResult: the immutable output of the tax engine
//   - CalculationRecord: a TaxResult plus its input snapshot, as persisted
//
// # Design Principles
//
// 1. **Closed role enumeration**: partner roles are a tagged type with
// exactly two values, parsed with explicit failure, never raw strings
// trusted at point of use.
//
// 2. **Validation before computation**: models expose Validate methods;
// the tax engine runs them all before touching any tax math, and a
// failure produces no partial result.
//
// 3. **Immutable results**: a TaxResult is built once per calculation and
// never mutated afterwards.
package models
