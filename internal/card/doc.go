/*
Package card implements the card sheet: the validation-and-presentation
state machine between the hosted fields provider and the checkout flow's
submission pipeline.

The sheet never sees raw card data. It decides which fields to request from
the provider, tracks field events into a coherent form state, presents
field-targeted errors, and turns a submission into a single
tokenize-or-fail outcome.

Usage:

	view := card.New(card.Options{
	    Model:         model,
	    Document:      doc,
	    Gateway:       gatewayConfig,
	    Merchant:      merchantConfig.Card,
	    Authorization: clientToken,
	    Create:        sandbox.Creator(tokenizer),
	})

	if err := view.Initialize(ctx); err != nil {
	    // surfaced through model.AsyncDependencyFailed as well
	}

	payload, err := view.RequestPaymentMethod(ctx)

Error Handling:

Local validation failures reject with ErrNoPaymentMethod and are reported to
the shell only as the coarse fields-invalid code; the fine-grained message
lands on the failing field. Provider tokenize errors pass through verbatim,
including the duplicate-card code.
*/
package card
