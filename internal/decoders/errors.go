package decoders

import "errors"

// Decoder error kinds.
var (
	ErrWrongLength        = errors.New("account data has wrong length")
	ErrWrongDiscriminator = errors.New("wrong discriminator found")
	ErrUnknownDex         = errors.New("unknown dex: no decoder registered for this account owner")
)
