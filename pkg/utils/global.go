package utils

import "image/color"

//PlayerLabels are the detector labels treated as players. Generic COCO models only know "person".
var PlayerLabels = []string{"player", "person"}

//RefereeLabels are the detector labels treated as referees
var RefereeLabels = []string{"referee"}

//BallLabels are the detector labels treated as the ball
var BallLabels = []string{"ball", "sports ball"}

//FirstTeamID is the id of the first team, also the default team and default possession value
const FirstTeamID = 1

//SecondTeamID is the id of the second team
const SecondTeamID = 2

//DefaultFirstTeamColor is used for team 1 until (unless) the color model is fitted
var DefaultFirstTeamColor = color.RGBA{255, 0, 0, 0}

//DefaultSecondTeamColor is used for team 2 until (unless) the color model is fitted
var DefaultSecondTeamColor = color.RGBA{0, 0, 255, 0}

//UnknownTeamColor is used to draw a player whose team is unknown
var UnknownTeamColor = color.RGBA{255, 255, 255, 0}

//RefereeColor is used to draw referees
var RefereeColor = color.RGBA{255, 255, 0, 0}

//BallColor is used to draw the ball marker
var BallColor = color.RGBA{0, 255, 0, 0}

//PossessionMarkerColor is used to mark the player in possession of the ball
var PossessionMarkerColor = color.RGBA{255, 0, 0, 0}

//MsToKmh converts meters per second to kilometers per hour
const MsToKmh = 3.6
