// Package contract routes host calls to contract functions.
//
// A Router is built once at startup from explicit registrations:
//
//	router, err := contract.New(
//	    contract.WithName("greeter"),
//	    contract.WithFunction("greet", contract.Action1(greet).Named("name")),
//	    contract.WithReadOnly("hello", contract.Method0(hello)),
//	    contract.WithMiddleware(contract.LoggingMiddleware(logger)),
//	)
//
// Each call payload is an encoded abi.CallEnvelope. The router decodes every
// argument before the handler runs, then encodes the handler's results as
// successive wireformat encodings. Failures are reported as *CallError values
// and never terminate the process. No rollback is attempted: state a handler
// wrote stays written even if its results then fail to encode.
//
// Handlers reach the host through RuntimeFrom and the call metadata through
// CallContextFrom. Guests normally run a Router with Serve.
package contract
