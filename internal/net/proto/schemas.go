package proto

import "github.com/invopop/jsonschema"

// ContractSchemas returns the JSON Schema documents for the public wire
// contracts, keyed by contract name. The same documents back the
// GET /contracts endpoint and the schema emitter.
func ContractSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	client := reflector.Reflect(new(ClientMessage))
	client.Title = "Labyrinth Hunt Client Message"
	client.Description = "Validates inbound websocket envelopes for protocol version 1"

	turn := reflector.Reflect(new(TurnResultV1))
	turn.Title = "Labyrinth Hunt Turn Result"
	turn.Description = "Validates outbound turn result frames for protocol version 1"

	join := reflector.Reflect(new(JoinResponseV1))
	join.Title = "Labyrinth Hunt Join Response"
	join.Description = "Validates the POST /join response body for protocol version 1"

	return map[string]*jsonschema.Schema{
		"clientMessage": client,
		"turnResult":    turn,
		"joinResponse":  join,
	}
}
