package pooldata

import "fmt"

// Validate rejects a PoolInfo missing any field required to participate
// in the graph. Name/symbol are exempt.
func (p *PoolInfo) Validate() error {
	switch {
	case p.Address == nil:
		return fmt.Errorf("%w: address", ErrMissingField)
	case p.FeeRate == nil:
		return fmt.Errorf("%w: fee_rate", ErrMissingField)
	case p.PoolType == nil:
		return fmt.Errorf("%w: pool_type", ErrMissingField)
	case p.Dex == nil:
		return fmt.Errorf("%w: dex", ErrMissingField)
	case p.TickSpacing == nil:
		return fmt.Errorf("%w: tick_spacing", ErrMissingField)
	case p.TokenVaultA == nil:
		return fmt.Errorf("%w: token_vault_a", ErrMissingField)
	case p.TokenVaultB == nil:
		return fmt.Errorf("%w: token_vault_b", ErrMissingField)
	case p.Config == nil:
		return fmt.Errorf("%w: config", ErrMissingField)
	}

	if err := p.TokenA.validate("token_a"); err != nil {
		return err
	}
	if err := p.TokenB.validate("token_b"); err != nil {
		return err
	}
	return nil
}

func (t *TokenInfo) validate(label string) error {
	if t == nil {
		return fmt.Errorf("%w: %s", ErrMissingField, label)
	}
	if t.Address == nil {
		return fmt.Errorf("%w: %s.address", ErrMissingField, label)
	}
	if t.Decimals == nil {
		return fmt.Errorf("%w: %s.decimals", ErrMissingField, label)
	}
	return nil
}
