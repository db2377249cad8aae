/*
Package oracle provides middleware and test doubles around ports.Oracle.

  - Retry wraps an oracle and retries failed calls with a fixed delay,
    failing with domain.ErrOracleExhausted once attempts run out.
  - Scripted answers prompts from registered rules. Tests use it to drive
    the decomposer through exact call sequences.
*/
package oracle
